package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fetchlab/overgraph/internal/eventbus"
	"github.com/fetchlab/overgraph/internal/executor"
	"github.com/fetchlab/overgraph/internal/fixture"
	"github.com/fetchlab/overgraph/internal/introspection"
	"github.com/fetchlab/overgraph/internal/logging"
	"github.com/fetchlab/overgraph/internal/memrt"
	"github.com/fetchlab/overgraph/internal/otel"
	"github.com/fetchlab/overgraph/internal/schema"
	"github.com/fetchlab/overgraph/internal/server"
)

const rootUsage = `overgraph — minimal GraphQL API server over fixed sample data

USAGE:
  overgraph <command> [flags]

COMMANDS:
  serve       Run the HTTP GraphQL server
  print-sdl   Print the served GraphQL schema as SDL
  help        Show help for any command
`

const serveUsage = `serve FLAGS:
  -server.addr <addr>            HTTP listen address (default: :8080)
  -server.pretty                 Pretty-print JSON responses
  -server.timeout <duration>     Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>       Max request body size, 0 = unlimited (default: 1048576)
  -server.cors-origin <origin>   Allow CORS requests from origin. Repeatable; * allows all
  -graphql.introspection <bool>  Enable GraphQL introspection (default: true)
  -graphql.graphiql <bool>       Serve the GraphiQL page to browsers (default: true)
  -otel.endpoint <addr>          OTLP collector endpoint
  -otel.service <name>           OpenTelemetry service name (default: overgraph)
`

const printSDLUsage = `print-sdl FLAGS:
  -out <file>   Write SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("overgraph", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "print-sdl":
		return cmdPrintSDL(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "print-sdl":
		fmt.Print(printSDLUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdServe(args []string) error {
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	maxBody := int64(1 << 20)
	enableIntrospection := true
	enableGraphiQL := true
	otelEndpoint := ""
	otelService := "overgraph"
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size in bytes")
	fs.Var(&corsOrigins, "server.cors-origin", "Allow CORS requests from origin")
	fs.BoolVar(&enableIntrospection, "graphql.introspection", enableIntrospection, "Enable GraphQL introspection")
	fs.BoolVar(&enableGraphiQL, "graphql.graphiql", enableGraphiQL, "Serve the GraphiQL page to browsers")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	eventbus.Use(eventbus.New())
	defer logging.Attach(log.Default())()
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sch, err := memrt.Schema()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	var runtime executor.Runtime = memrt.NewRuntime(fixture.DefaultDataset())

	if enableIntrospection {
		wrapper := introspection.Wrap(runtime, sch)
		runtime = wrapper.Runtime
		sch = wrapper.Schema
	}

	sopts := []server.Option{
		server.WithGraphiQL(enableGraphiQL),
		server.WithMaxBodyBytes(maxBody),
	}
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}
	h, err := server.New(runtime, sch, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)
	mux.Handle("/healthz", server.HealthHandler{})

	log.Printf("GraphQL server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func cmdPrintSDL(args []string) error {
	outFile := ""
	fs := flag.NewFlagSet("print-sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, printSDLUsage)
		return err
	}

	sch, err := memrt.Schema()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	sdl := schema.Render(sch)
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}
