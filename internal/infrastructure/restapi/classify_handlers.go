package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
)

// ClassifyHandler exposes address classification and the signature table.
// The classifier behind it should use fail-closed resolvers: an HTTP request
// cannot answer a prompt.
type ClassifyHandler struct {
	classifier port.AddressClassifier
	signatures port.SignatureProvider
}

// NewClassifyHandler creates a new instance of ClassifyHandler.
func NewClassifyHandler(ac port.AddressClassifier, sp port.SignatureProvider) *ClassifyHandler {
	return &ClassifyHandler{classifier: ac, signatures: sp}
}

// GetClassificationHandler handles GET /classify/:address?chain=
func (h *ClassifyHandler) GetClassificationHandler(c *gin.Context) {
	result, err := h.classifier.ClassifyWithOverride(c.Request.Context(), c.Param("address"), c.Query("chain"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetChainsHandler handles GET /chains
func (h *ClassifyHandler) GetChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": signaturesOrEmpty(h.signatures.SignatureTable())})
}

func signaturesOrEmpty(t entity.SignatureTable) []entity.ChainSignature {
	if sigs := t.Signatures(); len(sigs) > 0 {
		return sigs
	}
	return []entity.ChainSignature{}
}
