package client

import "github.com/bakwc/htf/application/http"

// ResultKind tells how a fetch ended.
// Every kind but [Success] carries no status code, headers or content.
type ResultKind uint8

const (
	Success ResultKind = iota
	ConnectionTimeout
	SocketTimeout
	SocketError
	HostNotFound
	ResolveError
	WrongURL
	HTTPError
	InitializationError
)

func (k ResultKind) String() string {
	switch k {
	case Success:
		return "Success"
	case ConnectionTimeout:
		return "ConnectionTimeout"
	case SocketTimeout:
		return "SocketTimeout"
	case SocketError:
		return "SocketError"
	case HostNotFound:
		return "HostNotFound"
	case ResolveError:
		return "ResolveError"
	case WrongURL:
		return "WrongUrl"
	case HTTPError:
		return "HttpError"
	case InitializationError:
		return "InitializationError"
	default:
		return "Unknown"
	}
}

type Result struct {
	Kind    ResultKind
	Code    int // -1 unless Kind is Success.
	Headers http.Headers

	// ResolvedURL is the url as requested, since redirects are not followed.
	ResolvedURL string
	Content     []byte
}

func failedResult(kind ResultKind) Result {
	return Result{Kind: kind, Code: -1}
}

// Error is returned by [Client.GetURL] when the fetch did not succeed.
type Error struct {
	Kind ResultKind
	Code int

	cause error
}

func (e *Error) Error() string { return e.Kind.String() }

// Unwrap returns what made the fetch fail. It is nil for results built by hand.
func (e *Error) Unwrap() error { return e.cause }
