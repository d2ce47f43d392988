package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/avezina/givehub/internal/api"
	"github.com/avezina/givehub/internal/services"
	"github.com/avezina/givehub/internal/session"
)

// Login prompts for credentials and signs the user in. Backend rejection
// messages are shown verbatim; storage problems are called out separately so
// the user knows the password was fine.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		fmt.Fprintln(a.out, "Email and password are required.")
		return nil
	}

	s, err := a.sessions.SignIn(ctx, email, password)
	if err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s).\n", s.Name, s.Role)
	return nil
}

// Signup registers a new account. It does not sign the user in; they are
// pointed at the login command afterwards.
func (a *App) Signup(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	role, err := GetChoice(a.reader, "Account type", []string{string(api.RoleDonor), string(api.RoleCampaigner)}, a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		fmt.Fprintln(a.out, "Email and password are required.")
		return nil
	}

	acct, err := a.sessions.SignUp(ctx, api.SignUpParams{
		Name: name, Email: email, Password: password, Role: api.Role(role),
	})
	if err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s. Use 'login' to sign in.\n", acct.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.sessions.SignOut(ctx)
	if err != nil {
		// Signed out locally regardless; mention the cleanup failure.
		fmt.Fprintln(a.out, "Signed out, but the stored session could not be removed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) Whoami(_ context.Context) error {
	s, ok := a.sessions.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in.")
		return session.ErrNotAuthenticated
	}
	fmt.Fprintf(a.out, "%s <%s> — %s (id %s)\n", s.Name, s.Email, s.Role, s.UserID)
	return nil
}

func (a *App) Campaigns(ctx context.Context) error {
	list, err := a.campaigns.List(ctx)
	if err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	if s, ok := a.sessions.Current(); ok && s.Role == api.RoleCampaigner {
		mine := services.OwnedBy(list, s.UserID)
		fmt.Fprintf(a.out, "Your campaigns (%d):\n", len(mine))
		printCampaigns(a, mine)
		fmt.Fprintln(a.out, "All campaigns:")
	}
	printCampaigns(a, list)
	return nil
}

func printCampaigns(a *App, list []api.Campaign) {
	for _, c := range list {
		fmt.Fprintf(a.out, "  [%s] %s — %s raised of %s\n",
			c.ID, c.Title, formatCents(c.RaisedCents), formatCents(c.GoalCents))
	}
}

func (a *App) Donate(ctx context.Context) error {
	campaignID, err := GetSimpleText(a.reader, "Campaign id", a.out)
	if err != nil {
		return err
	}
	amountText, err := GetSimpleText(a.reader, "Amount in dollars", a.out)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || amount <= 0 {
		fmt.Fprintln(a.out, "Please enter a valid amount.")
		return services.ErrInvalidAmount
	}
	method, err := GetChoice(a.reader, "Payment method", []string{services.MethodQR, services.MethodNFC}, a.out)
	if err != nil {
		return err
	}

	rc, err := a.donations.Donate(ctx, campaignID, int64(amount*100), method)
	if err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Thank you for your donation! Reference: %s\n", rc.Reference)
	return nil
}

func (a *App) History(ctx context.Context) error {
	list, err := a.donations.History(ctx)
	if err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No donations yet.")
		return nil
	}
	for _, d := range list {
		fmt.Fprintf(a.out, "  %s  %s to %s (%s, %s)\n",
			d.CreatedAt.Format("2006-01-02"), formatCents(d.AmountCents), d.CampaignID, d.Method, d.Status)
	}
	return nil
}

// reportAuthError translates the error taxonomy into user-facing text.
func (a *App) reportAuthError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, api.ErrInvalidCredentials):
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Fprintln(a.out, apiErr.Message)
		} else {
			fmt.Fprintln(a.out, "Invalid credentials.")
		}
	case errors.Is(err, api.ErrNetworkUnavailable):
		fmt.Fprintln(a.out, "Could not reach the server. Check your connection and try again.")
	case errors.Is(err, session.ErrStorage):
		fmt.Fprintln(a.out, "Credentials were accepted, but the session could not be saved on this device. Please try again.")
	case errors.Is(err, session.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Please sign in first.")
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidMethod):
		fmt.Fprintln(a.out, err.Error())
	default:
		a.log.Error(ctx, "command failed", "error", err)
		fmt.Fprintln(a.out, "Something went wrong:", err)
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
