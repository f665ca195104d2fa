package customHttpClient

import (
	"net/http"

	"github.com/akolanti/MentorAPI/internal/config"
)

//TODO: make qdrant/llm reuse connections like the embedder does

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

// GetPooledClient returns the shared keep-alive client for outbound API
// calls. Embedding a document fires many requests in a burst, reusing
// connections keeps the latency down.
func GetPooledClient() *http.Client {
	return pooledClient
}
