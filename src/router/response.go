package router

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	if statusCode >= http.StatusInternalServerError {
		log.Errorf("%s: %v", errType, err)
	} else {
		log.Warnf("%s: %v", errType, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.Errorf("setErrorResponse: encode: %v", encodeErr)
	}
}

// respond writes result, or err with the status it maps to.
func respond(errType string, result interface{}, err error, w http.ResponseWriter) {
	if err != nil {
		setErrorResponse(errType, eventmodels.StatusCodeOf(err), err, w)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.Errorf("%s: %v", errType, err)
	}
}
