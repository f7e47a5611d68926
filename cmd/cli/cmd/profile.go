// Package cmd - business profile commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedeza/business-consulting/core/validation"
)

var profileFlags struct {
	business  string
	name      string
	title     string
	email     string
	phone     string
	vatNumber string
	bbbee     string
	cipc      string
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the business profile shown on quotes",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved business profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		p, err := a.Profiles.Load(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Business:    %s\n", p.BusinessName)
		fmt.Fprintf(w, "Consultant:  %s\n", p.Consultant.Name)
		fmt.Fprintf(w, "Title:       %s\n", p.Consultant.Title)
		fmt.Fprintf(w, "Email:       %s\n", p.Consultant.Email)
		fmt.Fprintf(w, "Phone:       %s\n", p.Consultant.Phone)
		fmt.Fprintf(w, "VAT number:  %s\n", p.Consultant.VATNumber)
		fmt.Fprintf(w, "B-BBEE:      %s\n", p.Consultant.BBBEEStatus)
		fmt.Fprintf(w, "CIPC:        %s\n", p.Consultant.CIPCNumber)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the saved business profile",
	Long:  "Update the saved business profile. Only the given flags change.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		p, err := a.Profiles.Load(cmd.Context())
		if err != nil {
			return err
		}

		f := cmd.Flags()
		set := func(flag string, dst *string, v string) {
			if f.Changed(flag) {
				*dst = validation.Sanitize(v)
			}
		}
		set("business", &p.BusinessName, profileFlags.business)
		set("name", &p.Consultant.Name, profileFlags.name)
		set("title", &p.Consultant.Title, profileFlags.title)
		set("email", &p.Consultant.Email, profileFlags.email)
		set("phone", &p.Consultant.Phone, profileFlags.phone)
		set("vat-number", &p.Consultant.VATNumber, profileFlags.vatNumber)
		set("bbbee", &p.Consultant.BBBEEStatus, profileFlags.bbbee)
		set("cipc", &p.Consultant.CIPCNumber, profileFlags.cipc)

		if p.Consultant.Email != "" && !validation.IsEmail(p.Consultant.Email) {
			return fmt.Errorf("--email: %q is not a valid email address", p.Consultant.Email)
		}
		if p.Consultant.Phone != "" && !validation.IsPhone(p.Consultant.Phone) {
			return fmt.Errorf("--phone: %q is not a valid phone number", p.Consultant.Phone)
		}
		if p.Consultant.VATNumber != "" && !validation.IsVATNumber(p.Consultant.VATNumber) {
			return fmt.Errorf("--vat-number: %q must be 10 digits starting with 4 to 7", p.Consultant.VATNumber)
		}

		if err := a.Profiles.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile saved")
		return nil
	},
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileFlags.business, "business", "", "business name")
	f.StringVar(&profileFlags.name, "name", "", "consultant name")
	f.StringVar(&profileFlags.title, "title", "", "consultant title")
	f.StringVar(&profileFlags.email, "email", "", "consultant email")
	f.StringVar(&profileFlags.phone, "phone", "", "consultant phone")
	f.StringVar(&profileFlags.vatNumber, "vat-number", "", "VAT registration number")
	f.StringVar(&profileFlags.bbbee, "bbbee", "", "B-BBEE status")
	f.StringVar(&profileFlags.cipc, "cipc", "", "CIPC registration number")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
