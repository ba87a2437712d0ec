package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string       `yaml:"env" env-default:"local"`
	StoragePath string       `yaml:"storage_path" env-default:"./data/documents.db"`
	Index       IndexConfig  `yaml:"index"`
	Corpus      CorpusConfig `yaml:"corpus"`
}

// IndexConfig names the three artifact files a build produces and a
// search loads: the serialized trie, the term statistics table, and
// the document-id-to-path map.
type IndexConfig struct {
	TriePath   string `yaml:"trie_path" env-default:"./data/trie.txt"`
	StatsPath  string `yaml:"stats_path" env-default:"./data/stats.json"`
	DocMapPath string `yaml:"docmap_path" env-default:"./data/docmap.json"`
}

// CorpusConfig points at the directory of .txt documents a build reads.
type CorpusConfig struct {
	Dir string `yaml:"dir" env-default:"./data/corpus"`
}

func MustLoad() *Config {
	configPathFlag := flag.String("config", "", "Path to the config file")
	storagePathFlag := flag.String("storage-path", "", "Path to the document store directory")
	triePathFlag := flag.String("trie-path", "", "Path to the serialized trie file")
	statsPathFlag := flag.String("stats-path", "", "Path to the term statistics file")
	docmapPathFlag := flag.String("docmap-path", "", "Path to the document id map file")
	corpusDirFlag := flag.String("corpus-dir", "", "Path to the corpus directory")
	flag.Parse()

	configPath := *configPathFlag
	if configPath == "" {
		configPath = fetchConfigPath()
	}

	var cfg Config
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			panic("error loading config file: " + err.Error())
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("error loading config from environment: " + err.Error())
		}
	}

	if *storagePathFlag != "" {
		cfg.StoragePath = *storagePathFlag
	}
	if *triePathFlag != "" {
		cfg.Index.TriePath = *triePathFlag
	}
	if *statsPathFlag != "" {
		cfg.Index.StatsPath = *statsPathFlag
	}
	if *docmapPathFlag != "" {
		cfg.Index.DocMapPath = *docmapPathFlag
	}
	if *corpusDirFlag != "" {
		cfg.Corpus.Dir = *corpusDirFlag
	}

	return &cfg
}

// fetchConfigPath fetches the config path from an environment variable
// or a default if it was not set on the command line.
// Priority: flag > env > default.
func fetchConfigPath() string {
	res := os.Getenv("CONFIG_PATH")
	if res == "" {
		res = "./config/config_local.yaml"
	}

	fmt.Println("Config path:", res)
	return res
}
