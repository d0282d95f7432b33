package domain

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchQueryResult struct {
	Index       int              `json:"index"`
	Ingredients string           `json:"ingredients"`
	Result      *PredictResponse `json:"result,omitempty"`
	Status      BatchStatus      `json:"status"`
	Error       string           `json:"error,omitempty"`
	Message     string           `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Results  []BatchQueryResult `json:"results"`
	Summary  BatchSummary       `json:"summary"`
	Metadata BatchMeta          `json:"metadata"`
}
