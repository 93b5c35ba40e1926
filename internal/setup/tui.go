package setup

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

type yamlConfig struct {
	BackendURL    string `yaml:"backend_url"`
	PollInterval  string `yaml:"poll_interval"`
	DashboardAddr string `yaml:"dashboard_addr"`
	DataDir       string `yaml:"data_dir"`
	LoginEmail    string `yaml:"login_email"`
}

// RunTUI launches the terminal configuration wizard and writes config.yaml.
func RunTUI() error {
	var (
		backendURL      string
		pollIntervalStr string
		dashboardAddr   string
		dataDir         string
		loginEmail      string
		confirm         bool
	)

	// defaults
	backendURL = "http://localhost:8000"
	pollIntervalStr = "30s"
	dashboardAddr = ":8090"
	dataDir = "./wal"

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("CRYPTORA CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Point the dashboard at your backend.\n"))

	fmt.Println(stepStyle.Render("STEP 1: BACKEND"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend base origin").
				Description("The Cryptora backend service URL").
				Value(&backendURL),
			huh.NewInput().
				Title("Poll interval").
				Description("How often balances are re-fetched (e.g. 30s)").
				Value(&pollIntervalStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 2: LOCAL SETTINGS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dashboard listen address").
				Value(&dashboardAddr),
			huh.NewInput().
				Title("Data directory").
				Description("Where transfer history and balance caches are kept").
				Value(&dataDir),
			huh.NewInput().
				Title("Login email").
				Description("Leave empty to skip backend login").
				Value(&loginEmail),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 3: CONFIRM"))
	summary := fmt.Sprintf("backend: %s\npoll interval: %s\ndashboard: %s\ndata dir: %s\nemail: %s",
		backendURL, pollIntervalStr, dashboardAddr, dataDir, loginEmail)
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write config.yaml?").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("configuration aborted")
	}

	payload, err := yaml.Marshal(yamlConfig{
		BackendURL:    backendURL,
		PollInterval:  pollIntervalStr,
		DashboardAddr: dashboardAddr,
		DataDir:       dataDir,
		LoginEmail:    loginEmail,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile("config.yaml", payload, 0o644); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render("\nconfig.yaml written. Secrets go to the environment:"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("  CRYPTORA_WALLET_KEY, CRYPTORA_OPERATOR_KEY, CRYPTORA_PASSWORD"))
	return nil
}
