package fhir

import (
	"context"
	"io"
	"log"
	"net/http"

	json "github.com/goccy/go-json"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// GetPatient reads the Patient resource, presenting the caller's own
// SMART-on-FHIR access token. It returns nil on any failure: context lookup
// is best-effort and the pipeline carries on without it.
func (c *Client) GetPatient(ctx context.Context, patientID, accessToken string) *Patient {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/Patient/"+patientID,
		nil,
	)
	if err != nil {
		log.Printf("[fhir] build request: %v", err)
		return nil
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/fhir+json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[fhir] fetch patient %s: %v", patientID, err)
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("[fhir] fetch patient %s: status %d: %s", patientID, resp.StatusCode, body)
		return nil
	}

	var patient Patient
	if err := json.Unmarshal(body, &patient); err != nil {
		log.Printf("[fhir] decode patient %s: %v", patientID, err)
		return nil
	}

	return &patient
}
