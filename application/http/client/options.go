package client

import (
	"github.com/bakwc/htf/application/http"
)

type Options struct {
	Send    SendOptions
	Receive ReceiveOptions
}

type SendOptions struct {
	Encode http.EncodeOptions
}

type ReceiveOptions struct {
	Decode http.DecodeOptions
}

var DefaultOptions = Options{
	Send:    SendOptions{Encode: http.DefaultEncodeOptions},
	Receive: ReceiveOptions{Decode: http.DefaultDecodeOptions},
}
