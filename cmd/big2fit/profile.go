package big2fit

import (
	"context"
	"fmt"
	"math"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
}

var (
	profileName     string
	profileAge      int
	profileHeight   float64
	profileWeight   float64
	profileGender   string
	profileActivity string
	profileGoal     string
	profileJSON     bool
)

type profileView struct {
	Email          string               `json:"email"`
	Profile        model.Profile        `json:"profile"`
	Complete       bool                 `json:"complete"`
	BMR            int                  `json:"bmr,omitempty"`
	TDEE           int                  `json:"tdee,omitempty"`
	TargetCalories int                  `json:"target_calories,omitempty"`
	TargetMacros   service.MacroTargets `json:"target_macros"`
}

func newProfileView(acct model.Account) profileView {
	v := profileView{Email: acct.Email, Profile: acct.Profile, Complete: acct.Profile.IsComplete()}
	if v.Complete {
		target := service.TargetCalories(acct.Profile)
		v.BMR = int(math.Round(service.BMR(acct.Profile)))
		v.TDEE = int(math.Round(service.TDEE(acct.Profile)))
		v.TargetCalories = int(math.Round(target))
		v.TargetMacros = service.TargetMacros(target)
	}
	return v
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile and derived targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := requireLogin(env); err != nil {
				return err
			}
			acct, _ := env.session.Account()
			view := newProfileView(acct)
			if profileJSON {
				return printJSON(cmd, view)
			}
			printProfile(cmd, view)
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields (only the flags given are changed)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := requireLogin(env); err != nil {
				return err
			}
			acct, _ := env.session.Account()
			p, err := applyProfileFlags(cmd, acct.Profile)
			if err != nil {
				return err
			}
			if err := env.session.SaveProfile(ctx, p); err != nil {
				return err
			}
			acct, _ = env.session.Account()
			fmt.Fprintln(cmd.OutOrStdout(), "Updated profile")
			printProfile(cmd, newProfileView(acct))
			return nil
		})
	},
}

func applyProfileFlags(cmd *cobra.Command, p model.Profile) (model.Profile, error) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = profileName
	}
	if flags.Changed("age") {
		p.Age = profileAge
	}
	if flags.Changed("height") {
		p.HeightCm = profileHeight
	}
	if flags.Changed("weight") {
		p.WeightKg = profileWeight
	}
	if flags.Changed("gender") {
		g, err := model.ParseGender(profileGender)
		if err != nil {
			return p, err
		}
		p.Gender = g
	}
	if flags.Changed("activity") {
		a, err := model.ParseActivityLevel(profileActivity)
		if err != nil {
			return p, err
		}
		p.ActivityLevel = a
	}
	if flags.Changed("goal") {
		g, err := model.ParseGoal(profileGoal)
		if err != nil {
			return p, err
		}
		p.Goal = g
	}
	return p, nil
}

func printProfile(cmd *cobra.Command, v profileView) {
	out := cmd.OutOrStdout()
	p := v.Profile
	fmt.Fprintf(out, "Name: %s\n", p.Name)
	fmt.Fprintf(out, "Email: %s\n", v.Email)
	fmt.Fprintf(out, "Age: %d | Height: %s cm | Weight: %s kg | Gender: %s\n", p.Age, formatQty(p.HeightCm), formatQty(p.WeightKg), p.Gender)
	fmt.Fprintf(out, "Activity: %s | Goal: %s\n", p.ActivityLevel, p.Goal)
	if !v.Complete {
		fmt.Fprintln(out, "Profile incomplete: name, age, height, and weight are required for targets")
		return
	}
	fmt.Fprintf(out, "BMR: %d kcal | TDEE: %d kcal\n", v.BMR, v.TDEE)
	fmt.Fprintf(out, "Target: %d kcal | P %dg | C %dg | F %dg\n", v.TargetCalories, v.TargetMacros.ProteinG, v.TargetMacros.CarbsG, v.TargetMacros.FatG)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output as JSON")

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "male|female")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "low|moderate|high|very_high|hyperactive")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "lose_fast|lose_slow|maintain|gain_slow|gain_fast")
}
