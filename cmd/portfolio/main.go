package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"portfolio/internal"
	"portfolio/internal/catalog"
	"portfolio/internal/config"
	"portfolio/internal/export"
	"portfolio/internal/web"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(cfg.Require("PORTFOLIO_API_BASE_URL", cfg.APIBaseURL))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	switch cmd {
	case "projects:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		params := queryFlags(fs)
		_ = fs.Parse(os.Args[2:])
		client := catalog.NewClient(cfg)
		resp, err := client.GetProjects(ctx, *params)
		must(err)
		printJSON(resp)
	case "projects:get":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "project id")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*id) == "" {
			must(fmt.Errorf("--id is required"))
		}
		client := catalog.NewClient(cfg)
		project, err := client.GetProject(ctx, *id)
		must(err)
		if project == nil {
			must(fmt.Errorf("project not found: %s", *id))
		}
		printJSON(project)
	case "projects:normalize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "-", "json file path or - for stdin")
		kind := fs.String("kind", "project", "project|list")
		_ = fs.Parse(os.Args[2:])
		body, err := readInput(*input)
		must(err)
		n := catalog.NewNormalizer(cfg.APIBaseURL)
		switch strings.ToLower(strings.TrimSpace(*kind)) {
		case "project":
			printJSON(n.ParseProject(body))
		case "list":
			printJSON(n.ParseProjectsResponse(body, internal.ProjectsQueryParams{}))
		default:
			must(fmt.Errorf("unsupported kind: %s", *kind))
		}
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", filepath.Join(cfg.OutputDir, "projects.xlsx"), "output xlsx path")
		params := queryFlags(fs)
		_ = fs.Parse(os.Args[2:])
		if params.Limit == 0 {
			params.Limit = catalog.GalleryLimit
		}
		client := catalog.NewClient(cfg)
		resp, err := client.GetProjects(ctx, *params)
		must(err)
		projects := catalog.BuildIndex(resp.Projects).Filter(params.Search, params.Technology)
		if len(projects) == 0 {
			must(fmt.Errorf("no projects to export"))
		}
		must(export.ProjectsToXLSX(projects, *out))
		fmt.Printf("exported %d projects to %s\n", len(projects), *out)
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		addr := fs.String("addr", cfg.ServerAddr, "listen address")
		_ = fs.Parse(os.Args[2:])
		h, err := web.NewHandler(catalog.NewService(catalog.NewClient(cfg)), logger)
		must(err)
		must(web.Serve(ctx, *addr, web.NewRouter(h), logger))
	default:
		usage()
		os.Exit(1)
	}
}

func queryFlags(fs *flag.FlagSet) *internal.ProjectsQueryParams {
	params := &internal.ProjectsQueryParams{}
	fs.IntVar(&params.Page, "page", 0, "page number")
	fs.IntVar(&params.Limit, "limit", 0, "page size")
	fs.StringVar(&params.Technology, "technology", "", "technology filter")
	fs.StringVar(&params.Search, "search", "", "search text")
	return params
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	must(enc.Encode(v))
}

func usage() {
	fmt.Println("usage: portfolio <command>")
	fmt.Println("commands:")
	fmt.Println("  projects:list [--page=1] [--limit=12] [--technology=Go] [--search=...]")
	fmt.Println("  projects:get --id=...")
	fmt.Println("  projects:normalize [--input=file.json|-] [--kind=project|list]")
	fmt.Println("  export:xlsx [--out=./out/projects.xlsx] [--technology=...] [--search=...] [--limit=50]")
	fmt.Println("  serve [--addr=:8080]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
