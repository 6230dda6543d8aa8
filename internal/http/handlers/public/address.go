package public

import (
	"net/http"
	"strings"

	"github.com/giftgalore/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStates lists the states present in the address dataset.
func (h *Handler) GetStates(c *gin.Context) {
	response.Success(c, gin.H{"states": h.PincodeService.States()})
}

// GetDistricts lists the districts of one state.
func (h *Handler) GetDistricts(c *gin.Context) {
	state := strings.TrimSpace(c.Query("state"))
	if state == "" {
		respondError(c, response.CodeBadRequest, "state is required", nil)
		return
	}
	response.Success(c, gin.H{"districts": h.PincodeService.Districts(state)})
}

// GetAreas lists the areas of one district.
func (h *Handler) GetAreas(c *gin.Context) {
	state := strings.TrimSpace(c.Query("state"))
	district := strings.TrimSpace(c.Query("district"))
	if state == "" || district == "" {
		respondError(c, response.CodeBadRequest, "state and district are required", nil)
		return
	}
	response.Success(c, gin.H{"areas": h.PincodeService.Areas(state, district)})
}

// LookupPincode resolves a pincode to its matching address records.
func (h *Handler) LookupPincode(c *gin.Context) {
	pincode := strings.TrimSpace(c.Param("pincode"))
	records, err := h.PincodeService.Lookup(c.Request.Context(), pincode)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "failed to look up pincode")
		return
	}
	response.Success(c, gin.H{"records": records})
}

// ValidatePincode runs the coarse pincode-against-state check. A range
// mismatch produces a warning, never a rejection.
func (h *Handler) ValidatePincode(c *gin.Context) {
	pincode := strings.TrimSpace(c.Query("pincode"))
	state := strings.TrimSpace(c.Query("state"))
	check, err := h.PincodeService.Validate(pincode, state)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "failed to validate pincode")
		return
	}
	response.Success(c, check)
}

// GetAddressData serves the raw address dataset for client-side consumers.
func (h *Handler) GetAddressData(c *gin.Context) {
	data := h.PincodeService.RawData()
	if len(data) == 0 {
		respondError(c, response.CodeNotFound, "address dataset is not loaded", nil)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
