package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatchICERecoversReportICE(t *testing.T) {
	var caught *InternalError

	func() {
		defer CatchICE(func(ie *InternalError) {
			caught = ie
		})
		ReportICE("class resolver re-entered %s while it was already in progress", "Widget")
	}()

	require.NotNil(t, caught)
	require.Contains(t, caught.Error(), "Widget")
}

func TestCatchICERepanicsOnOtherValues(t *testing.T) {
	require.Panics(t, func() {
		defer CatchICE(func(*InternalError) {
			t.Fatal("should not have been invoked")
		})
		panic("not an internal error")
	})
}

func TestPluralize(t *testing.T) {
	require.Equal(t, "1 error", pluralize(1, "error"))
	require.Equal(t, "0 errors", pluralize(0, "error"))
	require.Equal(t, "2 warnings", pluralize(2, "warning"))
}
