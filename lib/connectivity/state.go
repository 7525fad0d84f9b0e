package connectivity

import (
	"fmt"
	"github.com/stoewer/go-strcase"
	"strings"
)

// NetworkState is the reachability transition reported by an Observer.
// It is not a polled status: Losing announces that the network
// will be gone soon, Lost reports that it is gone now.
type NetworkState uint16

const (
	Available   NetworkState = 0x8888
	Unavailable NetworkState = 0x8889
	Lost        NetworkState = 0x8890
	Losing      NetworkState = 0x8891
)

var stateNames = map[NetworkState]string{
	Available:   "Available",
	Unavailable: "Unavailable",
	Lost:        "Lost",
	Losing:      "Losing",
}

// States lists all network states.
var States = []NetworkState{Available, Unavailable, Lost, Losing}

func (s NetworkState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("NetworkState(%#x)", uint16(s))
}

func (s NetworkState) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

func ParseNetworkState(s string) (NetworkState, error) {
	for state, name := range stateNames {
		if normalize(name) == normalize(s) {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown network state %q", s)
}

func (s NetworkState) MarshalText() ([]byte, error) {
	return []byte(strcase.KebabCase(s.String())), nil
}

func (s *NetworkState) UnmarshalText(text []byte) (err error) {
	*s, err = ParseNetworkState(string(text))
	return
}

func normalize(s string) string {
	return strings.ReplaceAll(strcase.SnakeCase(strings.TrimSpace(s)), "_", "")
}
