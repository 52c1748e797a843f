package directory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the FHIR store on behalf of every resource client. It is
// built once at startup and shared by reference.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource contracts.TokenSource
	limiter     *rate.Limiter
	log         *zap.Logger
}

type Options struct {
	BaseUrl     string
	HTTPClient  *http.Client
	TokenSource contracts.TokenSource
	// Limiter paces outbound calls. Nil means unlimited.
	Limiter *rate.Limiter
	Log     *zap.Logger
}

func NewDirectoryClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseUrl, "/"),
		httpClient:  httpClient,
		tokenSource: opts.TokenSource,
		limiter:     limiter,
		log:         log,
	}
}

func (c *Client) Create(ctx context.Context, resourceType string, doc interface{}) ([]byte, error) {
	c.logCall(ctx, "Create", resourceType, "")

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	respBody, status, err := c.do(ctx, constvars.MethodPost, resourceType, c.resourceURL(resourceType, ""), body, constvars.MIMEApplicationFHIRJSON)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, exceptions.ErrCreateFHIRResource(outcomeError(respBody, status), resourceType)
	}
	return respBody, nil
}

func (c *Client) Read(ctx context.Context, resourceType, id string) ([]byte, error) {
	c.logCall(ctx, "Read", resourceType, id)

	respBody, status, err := c.do(ctx, constvars.MethodGet, resourceType, c.resourceURL(resourceType, id), nil, "")
	if err != nil {
		return nil, err
	}
	switch {
	case status == constvars.StatusNotFound || status == constvars.StatusGone:
		return nil, exceptions.ErrFHIRResourceNotFound(outcomeError(respBody, status), resourceType, id)
	case !isSuccess(status):
		return nil, exceptions.ErrGetFHIRResource(outcomeError(respBody, status), resourceType)
	}
	return respBody, nil
}

func (c *Client) Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.FHIRBundle, error) {
	c.logCall(ctx, "Search", resourceType, "", zap.String(constvars.LoggingQueryParamsKey, params.Encode()))

	searchURL := c.resourceURL(resourceType, "")
	if encoded := params.Encode(); encoded != "" {
		searchURL += "?" + encoded
	}
	return c.fetchBundle(ctx, resourceType, searchURL)
}

// SearchPage fetches a page by the link the store returned on the previous page.
func (c *Client) SearchPage(ctx context.Context, pageURL string) (*fhir_dto.FHIRBundle, error) {
	c.logCall(ctx, "SearchPage", constvars.ResourceBundle, "")

	resolved, err := c.resolveLink(pageURL)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	return c.fetchBundle(ctx, constvars.ResourceBundle, resolved)
}

func (c *Client) Update(ctx context.Context, resourceType, id string, doc interface{}) ([]byte, error) {
	c.logCall(ctx, "Update", resourceType, id)

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	respBody, status, err := c.do(ctx, constvars.MethodPut, resourceType, c.resourceURL(resourceType, id), body, constvars.MIMEApplicationFHIRJSON)
	if err != nil {
		return nil, err
	}
	switch {
	case status == constvars.StatusNotFound || status == constvars.StatusGone:
		return nil, exceptions.ErrFHIRResourceNotFound(outcomeError(respBody, status), resourceType, id)
	case !isSuccess(status):
		return nil, exceptions.ErrUpdateFHIRResource(outcomeError(respBody, status), resourceType)
	}
	return respBody, nil
}

// Patch sends a JSON Patch body. Only add and replace reach the store; any
// other op is refused before a request is made.
func (c *Client) Patch(ctx context.Context, resourceType, id string, ops []fhir_dto.PatchOperation) ([]byte, error) {
	c.logCall(ctx, "Patch", resourceType, id, zap.Int(constvars.LoggingPatchOpsKey, len(ops)))

	for _, op := range ops {
		if op.Op != constvars.FhirPatchOpAdd && op.Op != constvars.FhirPatchOpReplace {
			return nil, exceptions.ErrPatchOpUnsupported(op.Op, op.Path)
		}
	}

	body, err := json.Marshal(ops)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	respBody, status, err := c.do(ctx, constvars.MethodPatch, resourceType, c.resourceURL(resourceType, id), body, constvars.MIMEApplicationJSONPatch)
	if err != nil {
		return nil, err
	}
	switch {
	case status == constvars.StatusNotFound || status == constvars.StatusGone:
		return nil, exceptions.ErrFHIRResourceNotFound(outcomeError(respBody, status), resourceType, id)
	case !isSuccess(status):
		return nil, exceptions.ErrPatchFHIRResource(outcomeError(respBody, status), resourceType)
	}
	return respBody, nil
}

func (c *Client) Delete(ctx context.Context, resourceType, id string) error {
	c.logCall(ctx, "Delete", resourceType, id)

	respBody, status, err := c.do(ctx, constvars.MethodDelete, resourceType, c.resourceURL(resourceType, id), nil, "")
	if err != nil {
		return err
	}
	switch {
	case status == constvars.StatusNotFound || status == constvars.StatusGone:
		return exceptions.ErrFHIRResourceNotFound(outcomeError(respBody, status), resourceType, id)
	case !isSuccess(status):
		return exceptions.ErrDeleteFHIRResource(outcomeError(respBody, status), resourceType)
	}
	return nil
}

// Transaction posts a transaction bundle to the store root.
func (c *Client) Transaction(ctx context.Context, bundle *fhir_dto.FHIRBundle) (*fhir_dto.FHIRBundle, error) {
	c.logCall(ctx, "Transaction", constvars.ResourceBundle, "", zap.Int(constvars.LoggingDataKey, len(bundle.Entry)))

	body, err := json.Marshal(bundle)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	respBody, status, err := c.do(ctx, constvars.MethodPost, constvars.ResourceBundle, c.baseURL, body, constvars.MIMEApplicationFHIRJSON)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, exceptions.ErrCreateFHIRResource(outcomeError(respBody, status), constvars.ResourceBundle)
	}

	var result fhir_dto.FHIRBundle
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
	}
	return &result, nil
}

func (c *Client) fetchBundle(ctx context.Context, resourceType, rawURL string) (*fhir_dto.FHIRBundle, error) {
	respBody, status, err := c.do(ctx, constvars.MethodGet, resourceType, rawURL, nil, "")
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, exceptions.ErrGetFHIRResource(outcomeError(respBody, status), resourceType)
	}

	var result fhir_dto.FHIRBundle
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, resourceType)
	}
	return &result, nil
}

// do sends one request. Transport errors, 5xx and 429 come back as
// RemoteUnavailable; a 401 is retried once with a fresh credential. Every
// other status is handed to the caller to classify.
func (c *Client) do(ctx context.Context, method, resourceType, rawURL string, body []byte, contentType string) ([]byte, int, error) {
	for attempt := 0; ; attempt++ {
		respBody, status, err := c.send(ctx, method, resourceType, rawURL, body, contentType)
		if err != nil {
			return nil, 0, err
		}

		switch {
		case status == constvars.StatusUnauthorized && attempt == 0:
			c.log.Warn("directoryClient credential rejected, refreshing",
				zap.String(constvars.LoggingRequestIDKey, requestIDFrom(ctx)),
				zap.String(constvars.LoggingResourceTypeKey, resourceType),
			)
			c.tokenSource.Invalidate()
			continue
		case status == constvars.StatusUnauthorized:
			return nil, status, exceptions.ErrCredentialRejected(outcomeError(respBody, status))
		case status >= constvars.StatusInternalServerError || status == constvars.StatusTooManyRequests:
			return nil, status, exceptions.ErrRemoteUnavailable(outcomeError(respBody, status), resourceType)
		}
		return respBody, status, nil
	}
}

func (c *Client) send(ctx context.Context, method, resourceType, rawURL string, body []byte, contentType string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, exceptions.ErrRemoteUnavailable(err, resourceType)
	}

	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindUnauthenticated) {
			return nil, 0, err
		}
		return nil, 0, exceptions.ErrUnauthenticated(err)
	}
	if token == "" {
		return nil, 0, exceptions.ErrUnauthenticated(nil)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, constvars.BearerTokenPrefix+token)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if contentType != "" {
		req.Header.Set(constvars.HeaderContentType, contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, exceptions.ErrRemoteUnavailable(err, resourceType)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, exceptions.ErrRemoteUnavailable(err, resourceType)
	}
	return respBody, resp.StatusCode, nil
}

func (c *Client) resourceURL(resourceType, id string) string {
	if id == "" {
		return fmt.Sprintf("%s/%s", c.baseURL, resourceType)
	}
	return fmt.Sprintf("%s/%s/%s", c.baseURL, resourceType, url.PathEscape(id))
}

// resolveLink accepts the absolute links most stores return, and relative
// ones resolved against the store base.
func (c *Client) resolveLink(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	if parsed.IsAbs() {
		return link, nil
	}
	if strings.HasPrefix(link, "/") {
		base, err := url.Parse(c.baseURL)
		if err != nil {
			return "", err
		}
		return base.ResolveReference(parsed).String(), nil
	}
	return c.baseURL + "/" + link, nil
}

func (c *Client) logCall(ctx context.Context, method, resourceType, id string, fields ...zap.Field) {
	logFields := append([]zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(ctx)),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	}, fields...)
	if id != "" {
		logFields = append(logFields, zap.String(constvars.LoggingResourceIDKey, id))
	}
	c.log.Info("directoryClient."+method+" called", logFields...)
}

func requestIDFrom(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// outcomeError turns an error response into an error carrying the store's
// OperationOutcome diagnostics when there are any.
func outcomeError(body []byte, status int) error {
	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(body, &outcome); err == nil && len(outcome.Issue) > 0 {
		diagnostics := make([]string, 0, len(outcome.Issue))
		for _, issue := range outcome.Issue {
			if issue.Diagnostics != "" {
				diagnostics = append(diagnostics, issue.Diagnostics)
			}
		}
		if len(diagnostics) > 0 {
			return fmt.Errorf("status %d: %s", status, strings.Join(diagnostics, "; "))
		}
	}
	return fmt.Errorf("status %d", status)
}
