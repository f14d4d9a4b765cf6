package main

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drummonds/pdfstitch/engine"
	"github.com/drummonds/pdfstitch/engine/pdfrenderer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the PDF stitching HTTP service",
	Long: `Serve exposes the pipeline over HTTP: POST /convert renders an uploaded
PDF and returns the stitched image, POST /extract-text returns its text
layer and GET /health reports liveness. Uploads land in the scratch
directory and a periodic sweeper removes stale ones.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default all interfaces)")
	serveCmd.Flags().String("port", "", "listen port (default 8000)")
	serveCmd.Flags().String("renderer", "", "rendering backend: fitz or pdfium (default fitz)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	renderer, err := pdfrenderer.NewRenderer(resolveRenderer(cmd))
	if err != nil {
		return err
	}
	defer renderer.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	e.Use(middleware.BodyLimit("32M"))

	serverHandler := &engine.ServerHandler{
		Engine:       engine.NewEngine(renderer, serverConfig),
		Echo:         e,
		ServerConfig: serverConfig,
	}
	if err := serverHandler.StartupChecks(); err != nil {
		return err
	}
	serverHandler.RegisterRoutes()

	scheduler := engine.InitializeSchedules(serverConfig)
	defer scheduler.Stop()

	listenAddr := resolveListenAddr(cmd)
	fmt.Println("========================================")
	fmt.Println("   pdfstitch - PDF stitching service")
	fmt.Println("========================================")
	fmt.Printf("Server will start on: %s\n", listenAddr)

	return e.Start(listenAddr)
}

// resolveListenAddr combines address and port with the usual flag, config
// file, environment precedence.
func resolveListenAddr(cmd *cobra.Command) string {
	ip := serverConfig.ListenAddrIP
	port := serverConfig.ListenAddrPort

	if cmd.Flags().Changed("addr") {
		ip, _ = cmd.Flags().GetString("addr")
	} else if v := viper.GetString("addr"); v != "" {
		ip = v
	}
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetString("port")
	} else if v := viper.GetString("port"); v != "" {
		port = v
	}

	return ip + ":" + port
}
