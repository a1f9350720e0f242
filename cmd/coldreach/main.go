package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"coldreach/internal/config"
	"coldreach/internal/db"
	"coldreach/internal/deliver"
	"coldreach/internal/email"
	"coldreach/internal/history"
	"coldreach/internal/llm"
	"coldreach/internal/prompt"
	"coldreach/internal/prospect"
	redisdb "coldreach/internal/redis"
	"coldreach/internal/research"
)

type options struct {
	name          string
	company       string
	role          string
	email         string
	linkedin      string
	website       string
	senderName    string
	senderCompany string
	valueProp     string
	cta           string
	tone          string
	length        string
	provider      string
	jsonOut       bool
	noResearch    bool
	save          bool
	send          bool
	showHistory   bool
	limit         int
	configPath    string
}

func main() {
	var opts options
	flag.StringVar(&opts.name, "name", "", "Prospect name")
	flag.StringVar(&opts.company, "company", "", "Company name")
	flag.StringVar(&opts.role, "role", "", "Prospect role/title")
	flag.StringVar(&opts.email, "email", "", "Prospect email")
	flag.StringVar(&opts.linkedin, "linkedin", "", "Prospect LinkedIn URL")
	flag.StringVar(&opts.website, "website", "", "Company website (for research)")
	flag.StringVar(&opts.senderName, "sender", "", "Your name")
	flag.StringVar(&opts.senderCompany, "sender-company", "", "Your company")
	flag.StringVar(&opts.valueProp, "value-prop", "", "Your value proposition")
	flag.StringVar(&opts.cta, "cta", email.DefaultCTA, "Call to action")
	flag.StringVar(&opts.tone, "tone", email.ToneProfessionalFriendly, "Email tone: professional|casual|professional-friendly")
	flag.StringVar(&opts.length, "length", email.LengthShort, "Email length: short|medium")
	flag.StringVar(&opts.provider, "provider", "", "LLM provider: auto|openai|anthropic (default: config, else auto)")
	flag.BoolVar(&opts.jsonOut, "json", false, "Output raw JSON")
	flag.BoolVar(&opts.noResearch, "no-research", false, "Skip website research")
	flag.BoolVar(&opts.save, "save", false, "Save the generation to history")
	flag.BoolVar(&opts.send, "send", false, "Send the email over SMTP after generating")
	flag.BoolVar(&opts.showHistory, "history", false, "List recent generations and exit")
	flag.IntVar(&opts.limit, "limit", history.DefaultRecentLimit, "How many history records to list")
	flag.StringVar(&opts.configPath, "config", "", "Path to config file")
	flag.Parse()

	if err := run(&opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if opts.showHistory {
		return listHistory(cfg, opts)
	}

	if opts.name == "" || opts.company == "" || opts.senderName == "" || opts.senderCompany == "" || opts.valueProp == "" {
		flag.Usage()
		return errors.New("-name, -company, -sender, -sender-company and -value-prop are required")
	}

	p := prospect.Prospect{
		Name:     opts.name,
		Company:  opts.company,
		Role:     opts.role,
		Email:    opts.email,
		LinkedIn: opts.linkedin,
		Website:  opts.website,
	}
	if err := p.Validate(); err != nil {
		return err
	}
	sender := email.Sender{
		Name:      opts.senderName,
		Company:   opts.senderCompany,
		ValueProp: opts.valueProp,
		CTA:       opts.cta,
	}
	sender.Normalize()
	if err := sender.Validate(); err != nil {
		return err
	}
	style := email.Style{Tone: opts.tone, Length: opts.length}
	style.Normalize()
	if err := style.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	// Research, best-effort
	var res *research.Result
	if p.Website != "" && !opts.noResearch {
		fmt.Fprintln(os.Stderr, "Researching prospect...")
		var cache *research.Cache
		if cfg.Redis.Addr != "" {
			cache = research.NewCache(redisdb.NewClient(cfg))
		}
		researcher := research.NewResearcher(cfg, cache)
		if r, err := researcher.Research(ctx, p.Website); err == nil {
			res = r
			research.Enrich(&p, res)
		}
		if p.CompanyDescription != "" {
			fmt.Fprintf(os.Stderr, "  Found: %s...\n", truncate(p.CompanyDescription, 80))
		}
	}

	provider, err := llm.Select(cfg, opts.provider)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Generating with %s...\n", provider.Name())

	promptText, err := prompt.Build(&p, &sender, &style)
	if err != nil {
		return err
	}
	raw, err := provider.Complete(ctx, promptText)
	if err != nil {
		return err
	}
	generated, err := email.Parse(raw)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		out, err := email.RenderJSON(&p, generated)
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		fmt.Println(email.Format(generated, &p))
	}

	if opts.save {
		if err := db.Init(cfg); err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		rec, err := history.NewStore(db.DB).Save(&p, generated, provider.Name(), res)
		if err != nil {
			return fmt.Errorf("failed to save generation: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved generation #%d\n", rec.ID)
	}

	if opts.send {
		mailer, err := deliver.NewMailer(cfg)
		if err != nil {
			return err
		}
		if err := mailer.Send(&p, generated); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Sent to %s\n", p.Email)
	}

	return nil
}

func listHistory(cfg *config.Config, opts *options) error {
	if err := db.Init(cfg); err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	recs, err := history.NewStore(db.DB).Recent(opts.limit)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		raw, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	}

	if len(recs) == 0 {
		fmt.Println("No generations saved yet.")
		return nil
	}
	for _, rec := range recs {
		fmt.Printf("#%d  %s  %-9s  %s (%s)\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Provider, rec.Name, rec.Company)
		fmt.Printf("    %s\n", rec.Subject)
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
