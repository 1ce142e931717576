package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

var pathwayCmd = &cobra.Command{
	Use:     "pathway",
	Aliases: []string{"plan"},
	Short:   "Create and view study pathways",
}

var pathwayNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new pathway",
	Long: `Answer the questionnaire with flags and generate a new pathway.

The intermediate and advanced levels require the calibration quiz score
(0-10). A score below 8 moves the plan down one level.

Examples:
  pathway pathway new --level beginner --hours 1-2 --language python --prep "1 week"
  pathway pathway new --level advanced --score 7 --language cpp --prep "3 months"`,
	RunE: runPathwayNew,
}

var pathwayShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current pathway",
	RunE:  runPathwayShow,
}

var pathwayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List previously generated pathways",
	RunE:  runPathwayList,
}

var adjustCmd = &cobra.Command{
	Use:   "adjust [note...]",
	Short: "Ask for a suggestion to adjust the current plan",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdjust,
}

var (
	newLevel    string
	newHours    string
	newLanguage string
	newPrep     string
	newScore    int
)

func init() {
	defaults := domain.DefaultAnswers()
	pathwayNewCmd.Flags().StringVar(&newLevel, "level", string(defaults.SkillLevel), "Skill level: beginner, intermediate, advanced")
	pathwayNewCmd.Flags().StringVar(&newHours, "hours", string(defaults.HoursPerDay), "Hours per day: 1-2, 2-3, 3-4, >4")
	pathwayNewCmd.Flags().StringVar(&newLanguage, "language", string(defaults.ProgrammingLanguage), "Language: python, java, cpp, javascript, c")
	pathwayNewCmd.Flags().StringVar(&newPrep, "prep", string(defaults.PrepTime), `Preparation time: "1 week", "1 month", "3 months"`)
	pathwayNewCmd.Flags().IntVar(&newScore, "score", -1, "Calibration quiz score for intermediate and advanced (0-10)")

	pathwayCmd.AddCommand(pathwayNewCmd)
	pathwayCmd.AddCommand(pathwayShowCmd)
	pathwayCmd.AddCommand(pathwayListCmd)
	pathwayCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(pathwayCmd)
}

func runPathwayNew(cmd *cobra.Command, _ []string) error {
	if wizardService == nil {
		return errors.New("wizard service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	level := domain.SkillLevel(newLevel)
	if !level.IsValid() {
		return fmt.Errorf("%w: unknown level %q", domain.ErrInvalidInput, newLevel)
	}
	if level.RequiresQuiz() && newScore < 0 {
		return fmt.Errorf("%w: --score is required for the %s level", domain.ErrInvalidInput, level)
	}

	ctx := cmd.Context()
	wizardService.Reset()
	if err := wizardService.Start(ctx); err != nil {
		return friendly(err)
	}
	if w := wizardService.State().Warning; w != "" {
		cmd.Printf("Warning: %s\n", w)
	}
	if err := wizardService.SelectLevel(level); err != nil {
		return err
	}
	err := wizardService.SubmitDetails(
		domain.HoursPerDay(newHours),
		domain.ProgrammingLanguage(newLanguage),
		domain.PrepTime(newPrep),
	)
	if err != nil {
		return err
	}
	if wizardService.State().Step == domain.StepQuiz {
		if err := wizardService.SubmitQuiz(newScore); err != nil {
			return err
		}
		if q := wizardService.State().Quiz; q != nil && q.Downgraded() {
			cmd.Printf("Quiz score %d: level adjusted from %s to %s\n", q.Score, q.LevelBefore, q.LevelAfter)
		}
	}

	cmd.Println("Generating your pathway...")
	p, err := wizardService.Generate(ctx)
	if err != nil {
		return friendly(err)
	}
	cmd.Println()
	printPathway(cmd, p)
	return nil
}

func runPathwayShow(cmd *cobra.Command, _ []string) error {
	if pathwayService == nil {
		return errors.New("pathway service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	p, err := pathwayService.Current(cmd.Context())
	if errors.Is(err, domain.ErrNoPathway) {
		cmd.Println("No pathway yet. Run 'pathway pathway new' to create one.")
		return nil
	}
	if err != nil {
		return friendly(err)
	}
	printPathway(cmd, p)
	return nil
}

func runPathwayList(cmd *cobra.Command, _ []string) error {
	if pathwayService == nil {
		return errors.New("pathway service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	items, err := pathwayService.List(cmd.Context())
	if err != nil {
		return friendly(err)
	}
	if len(items) == 0 {
		cmd.Println("No pathways found.")
		return nil
	}

	cmd.Printf("Pathways (%d)\n\n", len(items))
	for _, it := range items {
		created := "-"
		if it.CreatedAt != nil {
			created = it.CreatedAt.Local().Format("2006-01-02")
		}
		cmd.Printf("  %-10s  %-40s  %3d days  %s\n", created, it.Title, it.Days, it.ID)
	}
	return nil
}

func runAdjust(cmd *cobra.Command, args []string) error {
	if pathwayService == nil {
		return errors.New("pathway service not configured")
	}
	if err := requireSession(); err != nil {
		return err
	}

	suggestion, err := pathwayService.Adjust(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return friendly(err)
	}
	cmd.Println(suggestion)
	return nil
}

// printPathway writes the schedule and tracked sections.
func printPathway(cmd *cobra.Command, p *domain.Pathway) {
	progress := domain.ComputeProgress(p)
	cmd.Println(p.Title)
	cmd.Println(strings.Repeat("=", len(p.Title)))
	cmd.Printf("Progress: %d%% (%d/%d)\n", progress.Percentage, progress.Completed, progress.Total)

	days := p.SortedDays()
	if len(days) > 0 {
		cmd.Println()
		cmd.Println("[Schedule]")
	}
	for _, d := range days {
		line := fmt.Sprintf("  Day %d: %s", d.Day, d.Focus)
		if d.Time != "" {
			line += fmt.Sprintf(" (%s h)", d.Time)
		}
		cmd.Println(line)
		if len(d.Topics) > 0 {
			cmd.Printf("    Topics: %s\n", strings.Join(d.Topics, ", "))
		}
	}

	for _, kind := range domain.AllSectionKinds() {
		items := p.Sections.Items(kind)
		if len(items) == 0 {
			continue
		}
		cmd.Println()
		cmd.Printf("[%s]\n", kind.Description())
		for _, item := range items {
			cmd.Printf("  %s %-12s %s\n", checkbox(item.Completed), item.ID, item.Title)
		}
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
