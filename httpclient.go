package pummel

import (
	"net"
	"net/http"
	"time"
)

// DefaultHTTPClient is used when no other http.Client is configured
// on a Pummel. The transport keeps idle connections around per host
// so that every worker can reuse them across iterations. There is no
// per-request timeout: the run deadline is the only timeout in the
// engine, and an in-flight request is interrupted through its
// context.
var DefaultHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   1024,
		MaxConnsPerHost:       0,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}
