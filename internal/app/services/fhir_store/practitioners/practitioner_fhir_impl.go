package practitioners

import (
	"context"
	"net/url"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/app/services/fhir_store/pagination"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type practitionerFhirClient struct {
	Client contracts.DirectoryClient
	Log    *zap.Logger
}

func NewPractitionerFhirClient(client contracts.DirectoryClient, logger *zap.Logger) contracts.PractitionerFhirClient {
	return &practitionerFhirClient{
		Client: client,
		Log:    logger,
	}
}

func (c *practitionerFhirClient) CreatePractitioner(ctx context.Context, request *fhir_dto.Practitioner) (*fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.CreatePractitioner called", zap.String(constvars.LoggingRequestIDKey, requestID))

	request.ResourceType = constvars.ResourcePractitioner
	body, err := c.Client.Create(ctx, constvars.ResourcePractitioner, request)
	if err != nil {
		c.Log.Error("practitionerFhirClient.CreatePractitioner error creating practitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var practitioner fhir_dto.Practitioner
	if err := json.Unmarshal(body, &practitioner); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}
	return &practitioner, nil
}

func (c *practitionerFhirClient) FindPractitionerByID(ctx context.Context, practitionerID string) (*fhir_dto.PractitionerRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.FindPractitionerByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	body, err := c.Client.Read(ctx, constvars.ResourcePractitioner, practitionerID)
	if err != nil {
		return nil, err
	}

	doc, err := fhir_dto.ParseDocument(body)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}
	record := &fhir_dto.PractitionerRecord{Document: doc}
	if err := doc.Decode(&record.Practitioner); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}
	return record, nil
}

// FindPractitionerByEmail searches by the email token and keeps only
// practitioners that really carry the address, compared case-insensitively.
func (c *practitionerFhirClient) FindPractitionerByEmail(ctx context.Context, email string) ([]fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.FindPractitionerByEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	params := url.Values{}
	params.Set("email", email)
	found, err := pagination.Collect[fhir_dto.Practitioner](ctx, c.Client, constvars.ResourcePractitioner, params)
	if err != nil {
		return nil, err
	}

	matches := make([]fhir_dto.Practitioner, 0, len(found))
	for _, practitioner := range found {
		for _, telecom := range practitioner.Telecom {
			if telecom.System == constvars.FhirContactSystemEmail && strings.EqualFold(telecom.Value, email) {
				matches = append(matches, practitioner)
				break
			}
		}
	}
	return matches, nil
}

func (c *practitionerFhirClient) FindPractitionersByName(ctx context.Context, name string) ([]fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.FindPractitionersByName called", zap.String(constvars.LoggingRequestIDKey, requestID))

	params := url.Values{}
	params.Set("name", name)
	return pagination.Collect[fhir_dto.Practitioner](ctx, c.Client, constvars.ResourcePractitioner, params)
}

func (c *practitionerFhirClient) FindAllPractitioners(ctx context.Context) ([]fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.FindAllPractitioners called", zap.String(constvars.LoggingRequestIDKey, requestID))

	params := url.Values{}
	params.Set("_count", constvars.FhirSearchPageSize)
	practitioners, err := pagination.Collect[fhir_dto.Practitioner](ctx, c.Client, constvars.ResourcePractitioner, params)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindAllPractitioners error collecting pages",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCollectedKey, len(practitioners)),
			zap.Error(err),
		)
		return nil, err
	}
	return practitioners, nil
}

func (c *practitionerFhirClient) UpdatePractitioner(ctx context.Context, practitionerID string, doc fhir_dto.Document) (*fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.UpdatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	body, err := c.Client.Update(ctx, constvars.ResourcePractitioner, practitionerID, doc)
	if err != nil {
		return nil, err
	}

	var practitioner fhir_dto.Practitioner
	if err := json.Unmarshal(body, &practitioner); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}
	return &practitioner, nil
}

func (c *practitionerFhirClient) DeletePractitioner(ctx context.Context, practitionerID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.DeletePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	return c.Client.Delete(ctx, constvars.ResourcePractitioner, practitionerID)
}
