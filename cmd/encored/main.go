// Command encored runs the playback daemon: it owns the playlist store
// and the audio device, and serves the line-oriented control protocol
// over TCP.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/mlevasseur/encore/internal/config"
	"github.com/mlevasseur/encore/internal/errmsg"
	"github.com/mlevasseur/encore/internal/player"
	"github.com/mlevasseur/encore/internal/playlist"
	"github.com/mlevasseur/encore/internal/session"
	"github.com/mlevasseur/encore/internal/stderr"
	"github.com/mlevasseur/encore/internal/store"
	"github.com/mlevasseur/encore/internal/tags"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		listen  = pflag.String("listen", "", "listen address (overrides config)")
		dbPath  = pflag.String("db", "", "path to the state database (overrides config)")
		audio   = pflag.Bool("audio", false, "drive the system audio device")
		verbose = pflag.BoolP("verbose", "v", false, "debug logging")

		scanDir  = pflag.String("scan", "", "seed a playlist from a music directory and exit")
		scanName = pflag.String("scan-as", "", "playlist name for --scan (default: directory name)")
		addUser  = pflag.String("add-user", "", "create a user and exit")
		shuffle  = pflag.Bool("shuffle", false, "grant the shuffle entitlement with --add-user")
	)
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	if *dbPath != "" {
		cfg.Server.DBPath = *dbPath
	}
	if *audio {
		cfg.Server.Audio = true
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}

	// With audio on, ALSA writes noise straight to fd 2. Capture it and
	// log from the saved descriptor so the two streams stay apart.
	logOut := os.Stderr
	var audioNoise <-chan string
	if cfg.Server.Audio {
		if orig, lines, err := stderr.Capture(); err == nil {
			defer stderr.Restore()
			logOut = orig
			audioNoise = lines
		}
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: logOut}).
		Level(level).
		With().Timestamp().Logger()

	if audioNoise != nil {
		go func() {
			for line := range audioNoise {
				log.Warn().Str("source", "audio").Msg(line)
			}
		}()
	}

	st, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStoreOpen, err))
	}
	defer st.Close()

	// Seeding modes run against the store and exit without serving.
	if *addUser != "" {
		if err := st.CreateUser(*addUser, *shuffle); err != nil {
			return err
		}
		log.Info().Str("user", *addUser).Bool("shuffle", *shuffle).Msg("user created")
		return nil
	}
	if *scanDir != "" {
		name := *scanName
		if name == "" {
			name = filepath.Base(*scanDir)
		}
		count, err := scanPlaylist(st, *scanDir, name, log)
		if err != nil {
			return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpPlaylistScan, *scanDir, err))
		}
		log.Info().Str("playlist", name).Int("tracks", count).Msg("playlist seeded")
		return nil
	}

	device := mockFactory
	if cfg.Server.Audio {
		device = speakerFactory
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := session.NewServer(cfg.Server, st, device, log)
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	log.Info().Msg("shut down")
	return nil
}

func speakerFactory() (player.Device, error) {
	return player.NewSpeaker()
}

func mockFactory() (player.Device, error) {
	return player.NewMock(), nil
}

// scanPlaylist walks dir for mp3 files and stores them, in lexical
// path order, as the named playlist.
func scanPlaylist(st *store.Store, dir, name string, log zerolog.Logger) (int, error) {
	var tracks []playlist.Track
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), tags.ExtMP3) {
			return nil
		}
		track, err := tags.Read(path)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("skipping file")
			return nil
		}
		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if err := st.SavePlaylist(name, tracks); err != nil {
		return 0, err
	}
	return len(tracks), nil
}
