package handler

type PredictRequest struct {
	Ingredients string `json:"ingredients"`
}

type BatchRequest struct {
	Queries []string `json:"queries"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Recipes    int    `json:"recipes"`
	Vocabulary int    `json:"vocabulary"`
}
