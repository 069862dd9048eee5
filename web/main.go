package main

import (
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.IntP("port", "p", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of JSON scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
