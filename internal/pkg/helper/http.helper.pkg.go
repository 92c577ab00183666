package helper

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"pos-terminal/internal/pkg/logger"
	"time"
)

/*----------- MethodEnum -----------*/

type MethodEnum string

const (
	GET    MethodEnum = http.MethodGet
	POST   MethodEnum = http.MethodPost
	PUT    MethodEnum = http.MethodPut
	PATCH  MethodEnum = http.MethodPatch
	DELETE MethodEnum = http.MethodDelete
)

func (m MethodEnum) ToString() string {
	return string(m)
}

// MultipartPart is one field of a multipart/form-data body.
// FileName empty means a plain field.
type MultipartPart struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

type HTTPRequestPayload struct {
	Method MethodEnum
	URL    string
	Params map[string]string
	Body   any
	Parts  []MultipartPart
}

type BasicAuth struct {
	Username string
	Password string
}

type HTTPRequestConfig struct {
	Ctx         context.Context
	Headers     http.Header
	Auth        *BasicAuth
	BearerToken string
}

type HTTPAPIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Decode unmarshals the response body into v. Empty bodies are left alone.
func (r *HTTPAPIResponse) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

type HTTPClientConfig struct {
	ProxyURL       string
	SkipTLSVerify  bool
	RequestTimeout time.Duration
}

// HTTPClient wraps http.Client with the request conventions used for remote APIs.
type HTTPClient struct {
	Client *http.Client
	Config *HTTPClientConfig
}

func NewHTTPClient(cfg *HTTPClientConfig) *HTTPClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			logger.Error.Printf("Invalid proxy URL: %v", err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Debug.Printf("Using proxy: %s", cfg.ProxyURL)
		}
	}

	return &HTTPClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		Config: cfg,
	}
}

// HTTPRequest performs a request and reads the whole response body.
func (c *HTTPClient) HTTPRequest(payload *HTTPRequestPayload, config *HTTPRequestConfig) (*HTTPAPIResponse, error) {
	if config == nil {
		config = &HTTPRequestConfig{}
	}
	if config.Ctx == nil {
		config.Ctx = context.Background()
	}
	if config.Headers == nil {
		config.Headers = http.Header{}
	}

	requestBody, err := handleRequestBody(payload, config)
	if err != nil {
		logger.Debug.Println("Error handling request body:", err.Error())
		return nil, err
	}

	req, err := prepareRequest(payload, requestBody, config)
	if err != nil {
		logger.Debug.Println("Error preparing request:", err.Error())
		return nil, err
	}

	return c.executeRequest(req)
}

func handleRequestBody(payload *HTTPRequestPayload, config *HTTPRequestConfig) (io.Reader, error) {
	if len(payload.Parts) > 0 {
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for _, part := range payload.Parts {
			if err := writePart(w, part); err != nil {
				return nil, fmt.Errorf("failed to write multipart field %s: %w", part.FieldName, err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		config.Headers.Set("Content-Type", w.FormDataContentType())
		return buf, nil
	}

	if payload.Body == nil {
		return nil, nil
	}

	b, err := json.Marshal(payload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	config.Headers.Set("Content-Type", "application/json")
	return bytes.NewReader(b), nil
}

func writePart(w *multipart.Writer, part MultipartPart) error {
	h := make(textproto.MIMEHeader)
	if part.FileName != "" {
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, part.FieldName, part.FileName))
	} else {
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, part.FieldName))
	}
	if part.ContentType != "" {
		h.Set("Content-Type", part.ContentType)
	}
	pw, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = pw.Write(part.Data)
	return err
}

func prepareRequest(payload *HTTPRequestPayload, body io.Reader, config *HTTPRequestConfig) (*http.Request, error) {
	req, err := http.NewRequestWithContext(config.Ctx, payload.Method.ToString(), payload.URL, body)
	if err != nil {
		return nil, err
	}

	for key, values := range config.Headers {
		req.Header[key] = append(req.Header[key], values...)
	}
	req.Header.Set("Accept", "application/json")

	if config.Auth != nil {
		req.SetBasicAuth(config.Auth.Username, config.Auth.Password)
	}
	if config.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+config.BearerToken)
	}

	if len(payload.Params) > 0 {
		q := req.URL.Query()
		for key, value := range payload.Params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req, nil
}

func (c *HTTPClient) executeRequest(req *http.Request) (*HTTPAPIResponse, error) {
	logger.Debug.Printf("Making request to: %s %s", req.Method, req.URL.String())

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug.Printf("Request completed with status: %d", resp.StatusCode)

	return &HTTPAPIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
