package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hatchpad/slackbridge/pkg/domain/types"
)

func TestValidate(t *testing.T) {
	gt.NoError(t, types.OrgID("T001").Validate())
	gt.Error(t, types.OrgID("").Validate())

	gt.NoError(t, types.UserID("U001").Validate())
	gt.Error(t, types.UserID("").Validate())
}

func TestPageCursor(t *testing.T) {
	gt.Bool(t, types.PageCursor("").IsEmpty()).True()
	gt.Bool(t, types.PageCursor("dXNlcjpVMDYx=").IsEmpty()).False()
	gt.Value(t, types.PageCursor("dXNlcjpVMDYx=").String()).Equal("dXNlcjpVMDYx=")
}
