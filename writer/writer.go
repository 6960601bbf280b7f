package writer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/api"
	"github.com/prometheus/prometheus/prompb"

	"flashcat.cloud/nfsmon/config"
)

// Writer posts batches of series to one remote write endpoint.
type Writer struct {
	Opts   config.WriterOption
	Client api.Client
}

func newWriter(opt config.WriterOption) (*Writer, error) {
	cli, err := api.NewClient(api.Config{
		Address: opt.Url,
		RoundTripper: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: time.Duration(opt.DialTimeout) * time.Millisecond,
			}).DialContext,
			ResponseHeaderTimeout: time.Duration(opt.Timeout) * time.Millisecond,
			MaxIdleConnsPerHost:   opt.MaxIdleConnsPerHost,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Writer{Opts: opt, Client: cli}, nil
}

func (w *Writer) Write(ctx context.Context, items []prompb.TimeSeries) error {
	if len(items) == 0 {
		return nil
	}

	data, err := proto.Marshal(&prompb.WriteRequest{Timeseries: items})
	if err != nil {
		return fmt.Errorf("marshal remote write request: %v", err)
	}

	return w.post(ctx, snappy.Encode(nil, data))
}

func (w *Writer) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, w.Opts.Url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Encoding", "snappy")
	req.Header.Set("Content-Type", "application/x-protobuf")
	req.Header.Set("User-Agent", "nfsmon/"+config.Version)
	req.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	for i := 0; i+1 < len(w.Opts.Headers); i += 2 {
		req.Header.Add(w.Opts.Headers[i], w.Opts.Headers[i+1])
		if w.Opts.Headers[i] == "Host" {
			req.Host = w.Opts.Headers[i+1]
		}
	}

	if w.Opts.BasicAuthUser != "" {
		req.SetBasicAuth(w.Opts.BasicAuthUser, w.Opts.BasicAuthPass)
	}

	resp, respBody, err := w.Client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("post to %s: %v", w.Opts.Url, err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("post to %s: status code %d, response body: %s", w.Opts.Url, resp.StatusCode, string(respBody))
	}

	return nil
}
