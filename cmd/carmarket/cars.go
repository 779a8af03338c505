package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/carmarket/internal/config"
	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/lib/utils"
	"github.com/deppfellow/carmarket/internal/model"
	"github.com/deppfellow/carmarket/internal/repository"
	"github.com/deppfellow/carmarket/internal/upstreamerr"
	"github.com/deppfellow/carmarket/internal/validation"
)

// TokenEnv supplies the access token when --token is not given.
const TokenEnv = "CARMARKET_TOKEN"

type apiFlags struct {
	token   string
	baseURL string
	timeout time.Duration
	data    string
	file    string
}

func (f *apiFlags) register(cmd *cobra.Command, payload bool) {
	cmd.Flags().StringVar(&f.token, "token", "", "access token (default $"+TokenEnv+")")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "upstream API base URL (default from config)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "request timeout (default from config)")
	if payload {
		cmd.Flags().StringVarP(&f.data, "data", "d", "", "JSON payload")
		cmd.Flags().StringVarP(&f.file, "file", "f", "", "read the JSON payload from `path`")
	}
}

func (f *apiFlags) tokenValue() (string, error) {
	token := f.token
	if token == "" {
		token = os.Getenv(TokenEnv)
	}
	if token == "" {
		return "", errors.Errorf("an access token is required: pass --token or set %s", TokenEnv)
	}
	return token, nil
}

// payload returns the JSON object given with --data or --file.
func (f *apiFlags) payload() ([]byte, error) {
	var body []byte
	switch {
	case f.data != "" && f.file != "":
		return nil, errors.New("use either --data or --file, not both")
	case f.data != "":
		body = []byte(f.data)
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read payload")
		}
		body = data
	default:
		return nil, errors.New("a payload is required: pass --data or --file")
	}

	if !validation.IsJSONObject(body) {
		return nil, errors.New("payload must be a JSON object")
	}
	return body, nil
}

func (f *apiFlags) client() (*upstream.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if f.baseURL != "" {
		cfg.Upstream.BaseURL = f.baseURL
	}
	if f.timeout > 0 {
		cfg.Upstream.Timeout = f.timeout
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	return upstream.NewClient(cfg.Upstream, cfg.Observability.Logging.SlowRequestThreshold, &logger), nil
}

// printResult writes a successful answer to stdout, or turns the failure
// into the same message the proxy routes would send.
func printResult(res *upstream.Response, err error) error {
	if err != nil {
		return upstreamerr.HandleError(err)
	}
	return utils.PrintJSON(os.Stdout, res.Body)
}

func newCarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Manage car listings on the upstream API",
	}

	cmd.AddCommand(
		carCommand("list", "List all cars", cobra.NoArgs, false,
			func(ctx context.Context, cars *repository.CarRepository, token string, _ []string, _ []byte) (*upstream.Response, error) {
				return cars.List(ctx, token)
			}),
		carCommand("get <id>", "Show one car", cobra.ExactArgs(1), false,
			func(ctx context.Context, cars *repository.CarRepository, token string, args []string, _ []byte) (*upstream.Response, error) {
				return cars.Get(ctx, token, args[0])
			}),
		carCommand("create", "Create a car", cobra.NoArgs, true,
			func(ctx context.Context, cars *repository.CarRepository, token string, _ []string, body []byte) (*upstream.Response, error) {
				return cars.Create(ctx, token, body)
			}),
		carCommand("update <id>", "Replace a car's fields", cobra.ExactArgs(1), true,
			func(ctx context.Context, cars *repository.CarRepository, token string, args []string, body []byte) (*upstream.Response, error) {
				return cars.Update(ctx, token, args[0], body)
			}),
		carCommand("delete <id>", "Delete a car", cobra.ExactArgs(1), false,
			func(ctx context.Context, cars *repository.CarRepository, token string, args []string, _ []byte) (*upstream.Response, error) {
				return cars.Delete(ctx, token, args[0])
			}),
	)

	return cmd
}

type carCall func(ctx context.Context, cars *repository.CarRepository, token string, args []string, body []byte) (*upstream.Response, error)

func carCommand(use, short string, args cobra.PositionalArgs, withPayload bool, call carCall) *cobra.Command {
	var flags apiFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := flags.tokenValue()
			if err != nil {
				return err
			}

			var body []byte
			if withPayload {
				if body, err = flags.payload(); err != nil {
					return err
				}
			}

			client, err := flags.client()
			if err != nil {
				return err
			}

			return printResult(call(cmd.Context(), repository.NewCarRepository(client), token, args, body))
		},
	}

	flags.register(cmd, withPayload)
	return cmd
}

func newSignupCmd() *cobra.Command {
	var (
		flags apiFlags
		req   model.SignupRequest
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return errors.Wrap(err, "username, email, password and confirmed-password are required")
			}

			client, err := flags.client()
			if err != nil {
				return err
			}

			return printResult(repository.NewAccountRepository(client).Register(cmd.Context(), req))
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "account username")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.ConfirmedPassword, "confirmed-password", "", "password confirmation")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "upstream API base URL (default from config)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "request timeout (default from config)")

	return cmd
}
