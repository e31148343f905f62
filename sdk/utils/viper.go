// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/signon-project/contribution-downloader/sdk/config"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
	"sigs.k8s.io/yaml"
)

// StoreFile holds the store settings of the config file. Tags:
// - json: key name in the yaml document and in the ini section
// - vkey: Viper key
// - env: env variable overriding the file value
// - default: optional default to set if key is unset
type StoreFile struct {
	Endpoint   string `json:"endpoint"   vkey:"minio.endpoint"   env:"MINIO_ENDPOINT"`
	BucketName string `json:"bucketName" vkey:"minio.bucketname" env:"MINIO_BUCKET_NAME"`
	Region     string `json:"region"     vkey:"minio.region"     env:"MINIO_REGION" default:"us-east-1"`
	Client     string `json:"client"     vkey:"minio.client"     env:"MINIO_CLIENT" default:"aws"`
}

type storeDocument struct {
	Minio StoreFile `json:"minio"`
}

// ResolveConfigPath: env > config.yml in the working directory
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnv)); p != "" {
		return p
	}
	return DefaultConfigFile
}

// BindEnvFromStruct binds env and defaults for all fields of StoreFile using struct tags.
func BindEnvFromStruct(v *viper.Viper) {
	rt := reflect.TypeOf(StoreFile{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}

		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = v.BindEnv(key, env)

		if def := f.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
}

// ReadStoreFile decodes the store section of a yaml/json or ini file.
func ReadStoreFile(path string) (StoreFile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return readIniStoreFile(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return StoreFile{}, fmt.Errorf("failed to read config file: %w", err)
		}
		var doc storeDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return StoreFile{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		return doc.Minio, nil
	}
}

func readIniStoreFile(path string) (StoreFile, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return StoreFile{}, fmt.Errorf("failed to read ini file: %w", err)
	}
	if !cfg.HasSection(StoreSection) {
		return StoreFile{}, fmt.Errorf("ini file %s has no [%s] section", path, StoreSection)
	}
	sec := cfg.Section(StoreSection)

	var out StoreFile
	rv := reflect.ValueOf(&out).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := rt.Field(i).Tag.Get("json")
		if name == "" || !sec.HasKey(name) {
			continue
		}
		rv.Field(i).SetString(sec.Key(name).String())
	}
	return out, nil
}

// LoadStoreSettings layers defaults < file < env in a fresh viper instance.
func LoadStoreSettings(path string) (StoreFile, error) {
	file, err := ReadStoreFile(path)
	if err != nil {
		return StoreFile{}, err
	}

	v := viper.New()
	BindEnvFromStruct(v)

	fileMap := map[string]any{}
	rv := reflect.ValueOf(file)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		key := rt.Field(i).Tag.Get("vkey")
		val := rv.Field(i).String()
		if key == "" || val == "" {
			continue
		}
		fileMap[strings.TrimPrefix(key, StoreSection+".")] = val
	}
	if err := v.MergeConfigMap(map[string]any{StoreSection: fileMap}); err != nil {
		return StoreFile{}, fmt.Errorf("failed to load config into viper: %w", err)
	}

	var out StoreFile
	ov := reflect.ValueOf(&out).Elem()
	for i := 0; i < rt.NumField(); i++ {
		if key := rt.Field(i).Tag.Get("vkey"); key != "" {
			ov.Field(i).SetString(strings.TrimSpace(v.GetString(key)))
		}
	}
	return out, nil
}

// BuildConfig reads the store settings and combines them with the credentials.
func BuildConfig(path string, creds config.S3Config) (config.Config, error) {
	st, err := LoadStoreSettings(path)
	if err != nil {
		return config.Config{}, err
	}

	conf := config.Config{
		S3: config.S3Config{
			AccessKey:   creds.AccessKey,
			SecretKey:   creds.SecretKey,
			AccessToken: creds.AccessToken,
			Region:      st.Region,
			EndpointURL: st.Endpoint,
		},
		Store: config.StoreConfig{
			Bucket: st.BucketName,
			Client: strings.ToLower(st.Client),
		},
	}
	if err := conf.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return conf, nil
}
