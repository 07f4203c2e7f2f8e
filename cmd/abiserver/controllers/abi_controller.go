// Package controllers provides HTTP handlers for the ABI codec service,
// mirroring the teacher's walletserver/controllers split.
package controllers

import (
	"encoding/json"
	"net/http"

	"tvmabi/cmd/abiserver/services"
)

// ABIController handles /v1/encode, /v1/decode and /v1/functionid.
type ABIController struct {
	svc *services.ABIService
}

// NewABIController builds an ABIController over svc.
func NewABIController(svc *services.ABIService) *ABIController {
	return &ABIController{svc: svc}
}

func (c *ABIController) Encode(w http.ResponseWriter, r *http.Request) {
	var req services.EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := c.svc.Encode(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func (c *ABIController) Decode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Function string `json:"function"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := c.svc.Decode(req.Function)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func (c *ABIController) FunctionID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Function string `json:"function"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := c.svc.FunctionID(req.Function)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
