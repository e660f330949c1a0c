package health

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}
