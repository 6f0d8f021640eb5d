package handler

import (
	"net/http"
	"strconv"

	"github.com/igorvsx/WalletControlAPI/internal/util"

	"github.com/gin-gonic/gin"
)

// paramID parses a positive numeric path parameter. On failure it writes
// the error response and returns ok=false.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// paramBool parses a true/false path parameter.
func paramBool(c *gin.Context, name string) (bool, bool) {
	v, err := strconv.ParseBool(c.Param(name))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid "+name)
		return false, false
	}
	return v, true
}
