package response

import "github.com/gin-gonic/gin"

// Machine-readable error codes: the per-kind enumeration clients branch on,
// instead of parsing detail strings. 40000-family codes are caller errors,
// 50000-family codes are provider or storage failures.
const (
	CodeBadRequest         = 40000
	CodeScrapeFailed       = 40010
	CodeInternalServer     = 50000
	CodeAIGenerationFailed = 50010
	CodeStorageFailed      = 50020
)

type ErrorBody struct {
	Code   int    `json:"code"`
	Detail string `json:"detail"`
}

func Error(c *gin.Context, httpStatus, code int, detail string) {
	c.JSON(httpStatus, ErrorBody{
		Code:   code,
		Detail: detail,
	})
}
