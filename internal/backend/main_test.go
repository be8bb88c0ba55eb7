package backend

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// httptest servers keep idle keep-alive conns briefly
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
