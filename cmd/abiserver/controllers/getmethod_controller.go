package controllers

import (
	"encoding/json"
	"net/http"

	"tvmabi/cmd/abiserver/services"
)

// GetMethodController handles /v1/getmethod.
type GetMethodController struct {
	svc *services.GetMethodService
}

// NewGetMethodController builds a GetMethodController over svc.
func NewGetMethodController(svc *services.GetMethodService) *GetMethodController {
	return &GetMethodController{svc: svc}
}

func (c *GetMethodController) Run(w http.ResponseWriter, r *http.Request) {
	var req services.GetMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := c.svc.Run(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func (c *GetMethodController) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.svc.History())
}
