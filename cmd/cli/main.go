package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type latest struct {
	State struct {
		Kind      string  `json:"kind"`
		LatencyMS float64 `json:"latency_ms"`
	} `json:"state"`
	StatusCode int       `json:"status_code"`
	Reason     string    `json:"reason"`
	CheckedAt  time.Time `json:"checked_at"`
	Ticks      uint64    `json:"ticks"`
}

type target struct {
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Method string  `json:"method"`
	Latest *latest `json:"latest"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}
	flag.StringVar(&api, "api", api, "status API base URL")
	flag.Parse()

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	client := rc.StandardClient()
	client.Timeout = 10 * time.Second

	resp, err := client.Get(api + "/api/targets")
	if err != nil {
		fmt.Println("Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Println("API returned status:", resp.Status)
		os.Exit(1)
	}

	var ts []target
	if err := json.NewDecoder(resp.Body).Decode(&ts); err != nil {
		fmt.Println("Bad response:", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHOD\tURL\tSTATE\tLATENCY\tUP TICKS\tCHECKED")
	for _, t := range ts {
		if t.Latest == nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t-\t-\t-\t-\n", t.Name, t.Method, t.URL)
			continue
		}
		l := t.Latest
		lat := "-"
		if l.State.Kind == "up" {
			lat = fmt.Sprintf("%.0fms", l.State.LatencyMS)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			t.Name, t.Method, t.URL, l.State.Kind, lat, l.Ticks, l.CheckedAt.Local().Format(time.TimeOnly))
	}
	_ = tw.Flush()
}
