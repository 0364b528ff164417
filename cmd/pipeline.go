package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/charm/internal/config"
	"github.com/josephgoksu/charm/internal/logger"
	"github.com/josephgoksu/charm/internal/planclient"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
	"github.com/josephgoksu/charm/internal/telemetry"
)

// profileFlag maps a command-line flag to the profile field it sets.
type profileFlag struct {
	name  string
	field profile.Field
	usage string
}

var profileFlags = []profileFlag{
	{"age", profile.FieldAge, "age in years"},
	{"height", profile.FieldHeightCM, "height in cm"},
	{"weight", profile.FieldWeightKG, "weight in kg"},
	{"activity", profile.FieldActivityLevel, "activity level: 1.2, 1.375, 1.55, 1.725 or 1.9"},
	{"goal", profile.FieldGoal, "goal: loss, gain or muscle"},
	{"deficiency", profile.FieldDeficiency, "deficiency: none, iron, vitd or protein"},
	{"chronic", profile.FieldChronic, "chronic condition: none, diabetes or hypertension"},
	{"cuisine", profile.FieldCuisinePref, "cuisine preference, free text"},
	{"food-type", profile.FieldFoodType, "food type: none, vegetarian, vegan or non-vegetarian"},
}

// addProfileFlags registers --profile and one flag per listed field. No fields
// means all of them.
func addProfileFlags(cmd *cobra.Command, fields ...profile.Field) {
	cmd.Flags().StringP("profile", "p", "", "profile YAML file to start from")
	for _, pf := range profileFlags {
		if len(fields) > 0 && !containsField(fields, pf.field) {
			continue
		}
		cmd.Flags().String(pf.name, "", pf.usage)
	}
}

func containsField(fields []profile.Field, f profile.Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

// profileFromFlags loads --profile (or the form defaults) and applies every flag
// the user set, in form order.
func profileFromFlags(cmd *cobra.Command, loader *profile.Loader) (profile.UserProfile, error) {
	p := profile.New()
	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		loaded, err := loader.Load(path)
		if err != nil {
			return p, err
		}
		p = loaded
	}

	for _, pf := range profileFlags {
		flag := cmd.Flags().Lookup(pf.name)
		if flag == nil || !flag.Changed {
			continue
		}
		next, err := p.Update(pf.field, flag.Value.String())
		if err != nil {
			return p, fmt.Errorf("--%s: %w", pf.name, err)
		}
		p = next
		logger.SetLastInput(string(pf.field))
	}
	return p, nil
}

// newTelemetryClient returns the PostHog client when the user opted in, and a
// no-op client otherwise.
func newTelemetryClient() telemetry.Client {
	cfg := GetConfig()
	if cfg.Telemetry.Disabled {
		return telemetry.NoopClient{}
	}
	consent, err := telemetry.Load()
	if err != nil {
		LogError("load telemetry consent", err)
		return telemetry.NoopClient{}
	}
	return telemetry.New(telemetry.ClientConfig{
		APIKey:   cfg.Telemetry.APIKey,
		Endpoint: cfg.Telemetry.Endpoint,
		Version:  version,
		Config:   consent,
	})
}

// crashContextObserver keeps the crash log's session line current.
func crashContextObserver(ev session.Event) {
	switch ev.Kind {
	case session.EventSubmitted:
		logger.SetSessionState(fmt.Sprintf("submitting ticket %d", ev.Ticket.ID))
	case session.EventSucceeded:
		logger.SetSessionState(fmt.Sprintf("idle, ticket %d succeeded", ev.Ticket.ID))
	case session.EventFailed:
		logger.SetSessionState(fmt.Sprintf("idle, ticket %d failed: %s", ev.Ticket.ID, telemetry.ErrorKind(ev.Err)))
	}
}

func newPlanClient() (*planclient.Client, config.ServiceConfig, error) {
	svc := config.LoadServiceConfig()
	client, err := planclient.NewClient(planclient.Config{
		BaseURL:   svc.BaseURL,
		UserAgent: "charm/" + version,
	})
	if err != nil {
		return nil, svc, err
	}
	slog.Debug("plan service", "endpoint", client.Endpoint(), "timeout", svc.Timeout)
	return client, svc, nil
}

// sessionOptions are the options every front end applies: the configured timeout,
// the crash context and telemetry.
func sessionOptions(svc config.ServiceConfig, tc telemetry.Client, surface string) []session.Option {
	return []session.Option{
		session.WithTimeout(svc.Timeout),
		session.WithObserver(crashContextObserver),
		session.WithObserver(telemetry.SessionObserver(tc, surface)),
	}
}

// newPlanSession wires the plan client, timeout and observers into a session.
// The returned telemetry client must be closed by the caller.
func newPlanSession(surface string, opts ...session.Option) (*session.Session, telemetry.Client, error) {
	client, svc, err := newPlanClient()
	if err != nil {
		return nil, nil, err
	}
	tc := newTelemetryClient()
	all := append(sessionOptions(svc, tc, surface), opts...)
	return session.New(client, all...), tc, nil
}

// trackCommandError reports the kind of a failed command, never its message.
func trackCommandError(cmd *cobra.Command, err error) {
	tc := newTelemetryClient()
	defer func() { _ = tc.Close() }()
	tc.Track(telemetry.EventCommandError, telemetry.Properties{
		"command":    cmd.Name(),
		"error_kind": telemetry.ErrorKind(err),
	})
}
