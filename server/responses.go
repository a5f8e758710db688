package server

import "github.com/gin-gonic/gin"

// APIResponse is the JSON envelope for every non-diagram response.
type APIResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func fail(c *gin.Context, statusCode int, message string, errs ...error) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, err.Error())
	}
	c.JSON(statusCode, resp)
}
