package root

// Data is the root response payload.
type Data struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello World"`
}

// GetOutput wraps Data as the huma response body.
type GetOutput struct {
	Body Data
}
