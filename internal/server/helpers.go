package server

import (
	"strconv"
	"strings"

	"questa/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a positive integer route parameter. The param name is
// humanized into the error message ("postId" -> "post ID").
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + humanizeParam(param))
	}
	return uint(id), nil
}

func humanizeParam(param string) string {
	if strings.HasSuffix(param, "Id") {
		return splitCamel(strings.TrimSuffix(param, "Id")) + " ID"
	}
	return splitCamel(param)
}

func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// listParams are the pagination controls shared by the admin listings.
type listParams struct {
	StartIndex int
	Limit      int
	Sort       string
}

// parseListParams reads startIndex, limit, and sort query parameters.
// Malformed numbers fall back to the defaults rather than erroring.
func parseListParams(c *fiber.Ctx) listParams {
	p := listParams{Sort: c.Query("sort")}

	if raw := c.Query("startIndex"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			p.StartIndex = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Limit = v
		}
	}
	return p
}
