package types

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

type (
	AnalysisID int64
	RequestID  string

	GitHubToken         string
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	GitLabToken         string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

func (x AnalysisID) String() string { return strconv.FormatInt(int64(x), 10) }

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x GitLabToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitLabToken) String() string {
	return "***********"
}
