package jenkins

import "encoding/json"

// Computer class discriminators recognized by the decoder
const (
	ClassMasterComputer = "hudson.model.Hudson$MasterComputer"
	ClassSlaveComputer  = "hudson.slaves.SlaveComputer"
)

// MasterComputerName is the display name of the built-in node
const MasterComputerName = "(master)"

// Computer is implemented by every decoded computer variant
type Computer interface {
	// ComputerClass returns the _class discriminator
	ComputerClass() string
	// ComputerName returns the display name
	ComputerName() string
}

// ComputerCommon carries the fields shared by every computer variant
type ComputerCommon struct {
	Class               string                     `json:"_class,omitempty"`
	DisplayName         string                     `json:"displayName"`
	Description         *string                    `json:"description,omitempty"`
	Idle                bool                       `json:"idle,omitempty"`
	Offline             bool                       `json:"offline,omitempty"`
	TemporarilyOffline  bool                       `json:"temporarilyOffline,omitempty"`
	LaunchSupported     bool                       `json:"launchSupported,omitempty"`
	ManualLaunchAllowed bool                       `json:"manualLaunchAllowed,omitempty"`
	JNLPAgent           bool                       `json:"jnlpAgent,omitempty"`
	NumExecutors        *int64                     `json:"numExecutors,omitempty"`
	OfflineCauseReason  string                     `json:"offlineCauseReason,omitempty"`
	MonitorData         map[string]json.RawMessage `json:"monitorData,omitempty"`
}

// ComputerClass returns the _class discriminator
func (c *ComputerCommon) ComputerClass() string { return c.Class }

// ComputerName returns the display name
func (c *ComputerCommon) ComputerName() string { return c.DisplayName }

// MasterComputer is the built-in node
type MasterComputer struct {
	ComputerCommon
}

// SlaveComputer is an agent node
type SlaveComputer struct {
	ComputerCommon
	AbsoluteRemotePath *string `json:"absoluteRemotePath,omitempty"`
}

// GenericComputer is the fallback for computer classes without a dedicated
// variant. Raw retains every field of the original payload.
type GenericComputer struct {
	ComputerCommon
	Raw map[string]json.RawMessage `json:"-"`
}

// ComputerSet is the list of computers attached to the server
type ComputerSet struct {
	Class          string     `json:"_class,omitempty"`
	DisplayName    string     `json:"displayName,omitempty"`
	BusyExecutors  *int64     `json:"busyExecutors,omitempty"`
	TotalExecutors *int64     `json:"totalExecutors,omitempty"`
	Computers      []Computer `json:"-"`
}

// UnmarshalJSON decodes the computer list element by element so each entry
// resolves to its concrete variant.
func (s *ComputerSet) UnmarshalJSON(data []byte) error {
	var head struct {
		Class          string            `json:"_class"`
		DisplayName    string            `json:"displayName"`
		BusyExecutors  *int64            `json:"busyExecutors"`
		TotalExecutors *int64            `json:"totalExecutors"`
		Computer       []json.RawMessage `json:"computer"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	s.Class = head.Class
	s.DisplayName = head.DisplayName
	s.BusyExecutors = head.BusyExecutors
	s.TotalExecutors = head.TotalExecutors
	s.Computers = make([]Computer, 0, len(head.Computer))
	for _, raw := range head.Computer {
		computer, err := DecodeComputer(raw)
		if err != nil {
			return err
		}
		s.Computers = append(s.Computers, computer)
	}
	return nil
}
