package directededge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang/glog"
)


const defaultHttpTimeout = 60 * time.Second
const defaultHttpConnectTimeout = 5 * time.Second
const defaultHttpTlsTimeout = 5 * time.Second


func defaultClient(settings *DatabaseSettings) *http.Client {
	// see https://medium.com/@nate510/don-t-use-go-s-default-http-client-4804cb19f779
	dialer := &net.Dialer{
		Timeout: settings.ConnectTimeout,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: settings.TlsTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   settings.HttpTimeout,
	}
}


type ApiCallback[R any] interface {
	Result(result R, err error)
}


// for internal use
type simpleApiCallback[R any] struct {
	callback func(result R, err error)
}

func NewApiCallback[R any](callback func(result R, err error)) ApiCallback[R] {
	return &simpleApiCallback[R]{
		callback: callback,
	}
}

func NewNoopApiCallback[R any]() ApiCallback[R] {
	return &simpleApiCallback[R]{
		callback: func(result R, err error) {},
	}
}

func (self *simpleApiCallback[R]) Result(result R, err error) {
	self.callback(result, err)
}


type ApiCallbackResult[R any] struct {
	Result R
	Error  error
}


// the channel is buffered so that a callback fired synchronously
// (e.g. an item that is already cached) does not block the caller
func NewBlockingApiCallback[R any]() (ApiCallback[R], chan ApiCallbackResult[R]) {
	c := make(chan ApiCallbackResult[R], 1)
	apiCallback := NewApiCallback[R](func(result R, err error) {
		c <- ApiCallbackResult[R]{
			Result: result,
			Error:  err,
		}
	})
	return apiCallback, c
}


// Transport is the http capability the items need.
// Callbacks may be invoked on any goroutine, exactly once per call.
type Transport interface {
	GetXml(url string, callback ApiCallback[[]byte])
	PutXml(url string, body []byte, callback ApiCallback[struct{}])
}


type HttpTransport struct {
	ctx    context.Context
	cancel context.CancelFunc

	client *http.Client
}

func NewHttpTransport(settings *DatabaseSettings) *HttpTransport {
	return NewHttpTransportWithContext(context.Background(), settings)
}

func NewHttpTransportWithContext(ctx context.Context, settings *DatabaseSettings) *HttpTransport {
	cancelCtx, cancel := context.WithCancel(ctx)

	return &HttpTransport{
		ctx:    cancelCtx,
		cancel: cancel,
		client: defaultClient(settings),
	}
}

func (self *HttpTransport) GetXml(url string, callback ApiCallback[[]byte]) {
	go get(self.ctx, self.client, url, callback)
}

func (self *HttpTransport) PutXml(url string, body []byte, callback ApiCallback[struct{}]) {
	go put(self.ctx, self.client, url, body, callback)
}

// in-flight requests fail with `ErrTransportClosed`
func (self *HttpTransport) Close() {
	self.cancel()
}


func get(ctx context.Context, client *http.Client, url string, callback ApiCallback[[]byte]) ([]byte, error) {
	requestId := NewRequestId()
	glog.V(1).Infof("[api][%s]get %s\n", requestId, redactUrl(url))

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		callback.Result(nil, err)
		return nil, err
	}

	req.Header.Add("Accept", "text/xml")
	req.Header.Add("X-Request-Id", requestId.String())

	responseBodyBytes, err := do(ctx, client, requestId, req)
	if err != nil {
		callback.Result(nil, err)
		return nil, err
	}

	glog.V(1).Infof("[api][%s]get done (%d bytes)\n", requestId, len(responseBodyBytes))
	callback.Result(responseBodyBytes, nil)
	return responseBodyBytes, nil
}


func put(ctx context.Context, client *http.Client, url string, body []byte, callback ApiCallback[struct{}]) error {
	requestId := NewRequestId()
	glog.V(1).Infof("[api][%s]put %s (%d bytes)\n", requestId, redactUrl(url), len(body))

	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(body))
	if err != nil {
		callback.Result(struct{}{}, err)
		return err
	}

	req.Header.Add("Content-Type", "text/xml")
	req.Header.Add("X-Request-Id", requestId.String())

	_, err = do(ctx, client, requestId, req)
	if err != nil {
		callback.Result(struct{}{}, err)
		return err
	}

	glog.V(1).Infof("[api][%s]put done\n", requestId)
	callback.Result(struct{}{}, nil)
	return nil
}


func do(ctx context.Context, client *http.Client, requestId RequestId, req *http.Request) ([]byte, error) {
	r, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %s", ErrTransportClosed, err)
		}
		glog.Infof("[api][%s]error = %s\n", requestId, err)
		return nil, err
	}
	defer r.Body.Close()

	responseBodyBytes, err := io.ReadAll(r.Body)

	if http.StatusOK != r.StatusCode {
		// the response body is the error message
		err = &StatusError{
			StatusCode: r.StatusCode,
			Message:    strings.TrimSpace(string(responseBodyBytes)),
		}
		glog.Infof("[api][%s]error = %s\n", requestId, err)
		return nil, err
	}

	if err != nil {
		glog.Infof("[api][%s]read error = %s\n", requestId, err)
		return nil, err
	}

	return responseBodyBytes, nil
}
