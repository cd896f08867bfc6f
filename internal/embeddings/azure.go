package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Environment variables holding the Azure OpenAI embedding configuration.
// All four are required; any missing value is a configuration error raised
// before a single network call is made.
const (
	EnvAzureEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvAzureDeployment = "AZURE_OPENAI_EMBED_DEPLOYMENT"
	EnvAzureAPIVersion = "AZURE_OPENAI_API_VERSION"
	EnvAzureAPIKey     = "AZURE_OPENAI_API_KEY"
)

const azureRequestTimeout = 60 * time.Second

// AzureEmbedder generates embeddings against an Azure OpenAI deployment.
type AzureEmbedder struct {
	endpoint   string
	deployment string
	apiVersion string
	apiKey     string
	dimensions int
	httpClient *http.Client
}

// NewAzureEmbedder creates an Azure OpenAI embedder. Every parameter is
// required; a missing one is reported immediately rather than as a failed
// request later.
func NewAzureEmbedder(endpoint, deployment, apiVersion, apiKey string) (*AzureEmbedder, error) {
	switch {
	case endpoint == "":
		return nil, fmt.Errorf("azure embedder: endpoint is required (%s)", EnvAzureEndpoint)
	case deployment == "":
		return nil, fmt.Errorf("azure embedder: deployment is required (%s)", EnvAzureDeployment)
	case apiVersion == "":
		return nil, fmt.Errorf("azure embedder: api version is required (%s)", EnvAzureAPIVersion)
	case apiKey == "":
		return nil, fmt.Errorf("azure embedder: api key is required (%s)", EnvAzureAPIKey)
	}

	return &AzureEmbedder{
		endpoint:   strings.TrimRight(endpoint, "/"),
		deployment: deployment,
		apiVersion: apiVersion,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: azureRequestTimeout},
	}, nil
}

// NewAzureEmbedderFromEnv builds an embedder from the AZURE_OPENAI_*
// environment variables.
func NewAzureEmbedderFromEnv() (*AzureEmbedder, error) {
	return NewAzureEmbedder(
		os.Getenv(EnvAzureEndpoint),
		os.Getenv(EnvAzureDeployment),
		os.Getenv(EnvAzureAPIVersion),
		os.Getenv(EnvAzureAPIKey),
	)
}

func (e *AzureEmbedder) Name() string {
	return "azure/" + e.deployment
}

// Dimensions returns the vector length observed on the most recent call,
// or 0 before the first successful Embed.
func (e *AzureEmbedder) Dimensions() int {
	return e.dimensions
}

type azureEmbedRequest struct {
	Input []string `json:"input"`
}

type azureEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed sends the whole batch in a single request. Any non-success response
// is a hard failure: no retry, no partial result.
func (e *AzureEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(azureEmbedRequest{Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/embeddings?api-version=%s",
		e.endpoint, e.deployment, e.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("embedding provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result azureEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}

	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("embedding provider returned %d vectors, expected %d", len(result.Data), len(texts))
	}

	vectors := make([][]float32, len(result.Data))
	for i, d := range result.Data {
		vectors[i] = d.Embedding
	}
	if len(vectors) > 0 && len(vectors[0]) > 0 {
		e.dimensions = len(vectors[0])
	}
	return vectors, nil
}
