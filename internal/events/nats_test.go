package events

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestSubject(t *testing.T) {
	check.Equal(t, "lelang.bids.17", Subject(17))
}

func TestConnectFailsWithoutServer(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1")
	check.Error(t, err)
}
