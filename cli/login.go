package cli

import (
	"errors"

	urfave "github.com/urfave/cli/v2"

	"github.com/socotra/jwtkit/config"
	clierrors "github.com/socotra/jwtkit/errors"
	"github.com/socotra/jwtkit/login"
)

func loginCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "login",
		Usage:     "Log in to the Socotra API and print the token",
		ArgsUsage: "[profile]",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "login `MODE`: admin, admin+tenant or tenant (add -ask to skip prompts)"},
			&urfave.StringFlag{Name: "tenant", Aliases: []string{"t"}, Usage: "tenant `HOSTNAME`"},
			&urfave.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `FORMAT`: text or json", Value: "text"},
		},
		Action: runLogin,
	}
}

func runLogin(c *urfave.Context) error {
	svc := MustServices(c.Context)
	svc.UseProfile(c.Args().First())

	format, err := svc.Format(c.String("format"))
	if err != nil {
		return err
	}
	res, err := doLogin(c, svc, c.String("mode"), c.String("tenant"))
	if err != nil {
		return err
	}
	return svc.Out.LoginResult(res, format)
}

// doLogin logs in with the configured credentials. Interactive modes
// prompt for missing values when input is a terminal.
func doLogin(c *urfave.Context, svc *Services, modeFlag, tenantFlag string) (*login.Result, error) {
	l := config.LoginFrom(svc.Config)
	if modeFlag == "" {
		modeFlag = l.Mode
	}
	mode, interactive, err := login.ParseMode(modeFlag)
	if err != nil {
		return nil, err
	}

	creds := login.Credentials{
		APIURL:   l.APIURL,
		Username: l.Username,
		Password: l.Password,
		Tenant:   tenantFlag,
	}
	if mode == login.ModeAdmin || mode == login.ModeAdminTenant {
		if l.AdminUsername != "" {
			creds.Username, creds.Password = l.AdminUsername, l.AdminPassword
		}
	}
	if creds.Tenant == "" && mode.NeedsTenant() {
		creds.Tenant = l.Tenant()
	}

	svc.Logger.Debug("login", "mode", mode, "api", creds.APIURL, "tenant", creds.Tenant, "profile", svc.Profile)

	var res *login.Result
	if interactive && svc.Asker.Interactive() {
		res, creds, err = svc.Login.Interactive(c.Context, svc.Asker, mode, creds)
	} else {
		res, err = svc.Login.Login(c.Context, mode, creds)
	}
	if err != nil {
		if errors.Is(err, clierrors.ErrMissingCredentials) {
			return nil, clierrors.NewMissingCredentialsError(svc.Profile)
		}
		return nil, clierrors.Wrap(err, creds.APIURL)
	}
	return res, nil
}
