package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/cognicare/internal/model"
	"github.com/verte-zerg/cognicare/internal/store"
)

var (
	profileName         string
	profileAge          int
	profileEmail        string
	profilePhone        string
	profileContactName  string
	profileContactPhone string
	profileContactRel   string
	profileHistory      []string
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage user profiles",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a profile for --user",
		Args:  cobra.NoArgs,
		RunE:  runProfileCreateCmd,
	}
	createCmd.Flags().StringVar(&profileName, "name", "", "display name")
	createCmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	createCmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	createCmd.Flags().StringVar(&profilePhone, "phone", "", "phone number")
	createCmd.Flags().StringVar(&profileContactName, "contact-name", "", "emergency contact name")
	createCmd.Flags().StringVar(&profileContactPhone, "contact-phone", "", "emergency contact phone")
	createCmd.Flags().StringVar(&profileContactRel, "contact-relationship", "", "emergency contact relationship")
	createCmd.Flags().StringSliceVar(&profileHistory, "history", nil, "medical history entries")

	cmd.AddCommand(createCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile for --user",
		Args:  cobra.NoArgs,
		RunE:  runProfileShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfileListCmd,
	})
	return cmd
}

func runProfileCreateCmd(cmd *cobra.Command, _ []string) error {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	if profileAge < 0 {
		return fmt.Errorf("--age must be >= 0")
	}
	ctx := cmd.Context()
	if _, err := a.store.GetProfile(ctx, a.user); err == nil {
		return fmt.Errorf("profile %q already exists", a.user)
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	name := profileName
	if name == "" {
		name = a.user
	}
	saved, err := a.store.SaveProfile(ctx, model.UserProfile{
		ID:    a.user,
		Name:  name,
		Age:   profileAge,
		Email: profileEmail,
		Phone: profilePhone,
		EmergencyContact: model.EmergencyContact{
			Name:         profileContactName,
			Phone:        profileContactPhone,
			Relationship: profileContactRel,
		},
		MedicalHistory: profileHistory,
	})
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (%s)\n", saved.ID, saved.Name)
	return err
}

func runProfileShowCmd(cmd *cobra.Command, _ []string) error {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	p, err := a.store.GetProfile(cmd.Context(), a.user)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no profile for %q (create one with: cognicare profile create --user %s)", a.user, a.user)
	}
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return enc.Close()
}

func runProfileListCmd(cmd *cobra.Command, _ []string) error {
	a, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	profiles, err := a.store.ListProfiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		logErrln("No profiles found. Create one with: cognicare profile create --user <id>")
		return nil
	}
	for _, p := range profiles {
		baseline := "no baseline"
		if p.Baseline != nil {
			baseline = "baseline " + p.Baseline.EstablishedAt.Local().Format("2006-01-02")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Age, baseline); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
