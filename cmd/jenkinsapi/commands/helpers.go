package commands

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkinsclient"
)

// createClient builds a client from the effective configuration: flags,
// environment, and the config file, in that order of precedence.
func createClient(ctx context.Context) (jenkins.Client, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, constants.ErrNoServerConfigured
	}

	config := &jenkins.Config{
		BaseURL:  server,
		Username: viper.GetString("username"),
		APIToken: viper.GetString("token"),
	}

	if viper.GetBool("skip-ssl-validation") {
		config.TLSConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicit user opt-in via flag
	}

	if viper.GetBool("verbose") {
		config.Logger = stderrLogger{}
		config.Debug = true
	}

	client, err := jenkinsclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// stderrLogger writes structured log lines to standard error.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s", level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}

// outputJSON encodes value to stdout as indented JSON.
func outputJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// outputYAML encodes value to stdout as YAML.
func outputYAML(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return nil
}

// formatValue renders a possibly empty string for table output.
func formatValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// formatInt64Ptr renders an optional numeric field for table output.
func formatInt64Ptr(value *int64) string {
	if value == nil {
		return constants.NotAvailable
	}

	return strconv.FormatInt(*value, 10)
}

// formatBuildStatus renders an optional build result for table output.
func formatBuildStatus(status *jenkins.BuildStatus) string {
	if status == nil {
		return "RUNNING"
	}

	return string(*status)
}

// formatTimestamp renders a millisecond epoch for table output.
func formatTimestamp(millis *int64) string {
	if millis == nil {
		return constants.NotAvailable
	}

	return time.UnixMilli(*millis).Format(constants.TimeLayout)
}

// formatDuration renders a millisecond duration for table output.
func formatDuration(millis *int64) string {
	if millis == nil {
		return constants.NotAvailable
	}

	return (time.Duration(*millis) * time.Millisecond).Round(time.Second).String()
}

// jobCommon extracts the shared job fields from any job variant.
func jobCommon(job jenkins.Job) *jenkins.JobCommon {
	switch j := job.(type) {
	case *jenkins.FreeStyleProject:
		return &j.JobCommon
	case *jenkins.WorkflowJob:
		return &j.JobCommon
	case *jenkins.MatrixProject:
		return &j.JobCommon
	case *jenkins.MavenModuleSet:
		return &j.JobCommon
	case *jenkins.Folder:
		return &j.JobCommon
	case *jenkins.GenericJob:
		return &j.JobCommon
	default:
		return nil
	}
}

// buildCommon extracts the shared build fields from any build variant.
func buildCommon(build jenkins.Build) *jenkins.BuildCommon {
	switch b := build.(type) {
	case *jenkins.FreeStyleBuild:
		return &b.BuildCommon
	case *jenkins.WorkflowRun:
		return &b.BuildCommon
	case *jenkins.MatrixBuild:
		return &b.BuildCommon
	case *jenkins.MatrixRun:
		return &b.BuildCommon
	case *jenkins.MavenBuild:
		return &b.BuildCommon
	case *jenkins.MavenModuleSetBuild:
		return &b.BuildCommon
	case *jenkins.MultiJobBuild:
		return &b.BuildCommon
	case *jenkins.GenericBuild:
		return &b.BuildCommon
	default:
		return nil
	}
}
