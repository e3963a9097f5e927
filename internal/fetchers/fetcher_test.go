package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auroracast/internal/config"
)

func testConfig(base string) *config.Config {
	return &config.Config{
		SWPCPlasmaURL:   base + "/products/solar-wind/plasma-2-hour.json",
		SWPCMagURL:      base + "/products/solar-wind/mag-2-hour.json",
		SWPCXrayURL:     base + "/json/goes/primary/xrays-1-day.json",
		SWPCProtonURL:   base + "/json/goes/primary/integral-protons-1-day.json",
		DONKIFlareURL:   base + "/DONKI/FLR",
		DONKICMEURL:     base + "/DONKI/CME",
		SIDCBulletinURL: base + "/products/meu",
		NASAAPIKey:      "DEMO_KEY",
		EarthWindowDeg:  30,
		CMESpeedFloor:   100,
		FlareAlertClass: "M5.0",
	}
}

func testSources(t *testing.T) *httptest.Server {
	t.Helper()

	recent := time.Now().UTC().Add(-time.Hour)
	tag := recent.Format("2006-01-02 15:04:05.000")
	isoTag := recent.Format("2006-01-02T15:04Z")

	mux := http.NewServeMux()
	mux.HandleFunc("/products/solar-wind/plasma-2-hour.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[["time_tag","density","speed","temperature"],[%q,"4.5","520.3","100000"]]`, tag)
	})
	mux.HandleFunc("/products/solar-wind/mag-2-hour.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[["time_tag","bx_gsm","by_gsm","bz_gsm","lon_gsm","lat_gsm","bt"],[%q,"1.0","2.0","-8.4","0","0","12.1"]]`, tag)
	})
	mux.HandleFunc("/json/goes/primary/xrays-1-day.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"time_tag":%q,"satellite":16,"flux":5.2e-5,"energy":"0.1-0.8nm"},
			{"time_tag":%q,"satellite":16,"flux":1.0e-7,"energy":"0.05-0.4nm"}
		]`, isoTag, isoTag)
	})
	mux.HandleFunc("/json/goes/primary/integral-protons-1-day.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"time_tag":%q,"satellite":16,"flux":2.0,"energy":">=10 MeV"},
			{"time_tag":%q,"satellite":16,"flux":0.1,"energy":">=100 MeV"}
		]`, isoTag, isoTag)
	})
	mux.HandleFunc("/DONKI/FLR", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			http.Error(w, "missing api key", http.StatusForbidden)
			return
		}
		fmt.Fprintf(w, `[{
			"flrID":"FLR-001","classType":"X1.1","sourceLocation":"N15W20",
			"beginTime":%q,"peakTime":%q,"endTime":%q,
			"linkedEvents":[{"activityID":"CME-001"}]
		}]`, isoTag, isoTag, isoTag)
	})
	mux.HandleFunc("/DONKI/CME", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{
			"activityID":"CME-001","startTime":%q,"sourceLocation":"N15W20",
			"cmeAnalyses":[{"speed":900,"longitude":20,"halfAngle":45,"isMostAccurate":true}]
		}]`, isoTag)
	})
	mux.HandleFunc("/products/meu", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>SIDC</title>
<item><title>X-class flare in progress</title><pubDate>%s</pubDate></item>
</channel></rss>`, recent.Format(time.RFC1123Z))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSnapshot(t *testing.T) {
	srv := testSources(t)
	f := NewDataFetcher(testConfig(srv.URL))

	snap, raw, err := f.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}

	if len(snap.SolarWind) != 1 {
		t.Errorf("SolarWind samples = %d, want 1", len(snap.SolarWind))
	}
	if len(snap.Xray) != 1 {
		t.Errorf("Xray samples = %d, want 1 after channel filter", len(snap.Xray))
	}
	if len(snap.Proton) != 1 {
		t.Errorf("Proton samples = %d, want 1 after channel filter", len(snap.Proton))
	}
	if len(snap.Flares) != 1 || !snap.Flares[0].HasCME {
		t.Errorf("Flares = %+v, want one with linked CME", snap.Flares)
	}
	if len(snap.CMEs) != 1 || !snap.CMEs[0].IsEarthDirected {
		t.Errorf("CMEs = %+v, want one Earth-directed", snap.CMEs)
	}
	if snap.CMEs[0].PredictedArrival == nil {
		t.Error("Earth-directed CME missing predicted arrival")
	}
	if snap.Summary == nil {
		t.Error("Summary is nil")
	}
	if snap.Conditions.XrayClass != "M5.2" {
		t.Errorf("XrayClass = %q, want M5.2", snap.Conditions.XrayClass)
	}

	// An X-class flare plus an M5+ alert both land in the event list.
	var sidcSeen, alertSeen bool
	for _, ev := range snap.Events {
		switch ev.Source {
		case "SIDC":
			sidcSeen = true
		case "DONKI":
			alertSeen = true
		}
	}
	if !sidcSeen || !alertSeen {
		t.Errorf("events missing sources: %+v", snap.Events)
	}

	if len(raw.Plasma) != 2 {
		t.Errorf("raw plasma rows = %d, want header plus one", len(raw.Plasma))
	}
}

func TestFetchSnapshotPartialFailure(t *testing.T) {
	srv := testSources(t)
	cfg := testConfig(srv.URL)
	cfg.DONKIFlareURL = srv.URL + "/missing"
	cfg.DONKICMEURL = srv.URL + "/missing"
	f := NewDataFetcher(cfg)

	snap, _, err := f.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot with partial failures: %v", err)
	}
	if len(snap.Flares) != 0 || len(snap.CMEs) != 0 {
		t.Errorf("failed catalogs produced data: %d flares, %d CMEs", len(snap.Flares), len(snap.CMEs))
	}
	if len(snap.SolarWind) != 1 {
		t.Errorf("SolarWind samples = %d, want 1 despite catalog failures", len(snap.SolarWind))
	}
}

func TestFetchSnapshotAllSourcesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := NewDataFetcher(testConfig(srv.URL))
	if _, _, err := f.FetchSnapshot(context.Background()); err == nil {
		t.Fatal("FetchSnapshot succeeded with every source failing")
	}
}
