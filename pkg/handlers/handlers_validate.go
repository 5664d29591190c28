package handlers

import (
	"errors"
	"net/http"

	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
	"github.com/gin-gonic/gin"
)

// ValidateDataset checks an uploaded JSON dataset without loading it
func (h *Handler) ValidateDataset(c *gin.Context) {
	var input dataset.Dataset
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Roster) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one name is required",
		})
		return
	}

	if err := dataset.Validate(&input); err != nil {
		var verr *dataset.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Invalid records", "problems": verr.Problems})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": err.Error()})
		return
	}

	// Duplicate names are allowed but worth flagging
	seen := make(map[string]bool)
	var duplicates []string
	for _, name := range input.Roster {
		if seen[name] {
			duplicates = append(duplicates, name)
		}
		seen[name] = true
	}

	summary := input.Summarize(h.Collator)
	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"duplicates": duplicates,
		"stats": gin.H{
			"name_count":        summary.People,
			"shift_count":       summary.Shifts,
			"unassigned_shifts": summary.UnassignedShifts,
			"days":              summary.Days,
		},
	})
}
