package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"penguin-service/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir string
		origDir string
	)

	BeforeEach(func() {
		var err error
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())

		Expect(os.Chdir(tempDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tempDir)
	})

	writeConfig := func(content string) {
		err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(content), 0o644)
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("Load", func() {
		Context("without a config file", func() {
			It("should use defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Address).To(Equal("0.0.0.0:8080"))
				Expect(cfg.Server.Environment).To(Equal(config.EnvDev))
				Expect(cfg.Model.Source).To(Equal(config.SourceFile))
				Expect(cfg.Model.Path).To(Equal(config.DefaultModelPath))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelInfo))
				Expect(cfg.ShutdownTimeout()).To(Equal(30 * time.Second))
				Expect(cfg.LoadTimeout()).To(Equal(30 * time.Second))
			})

			It("should apply environment overrides", func() {
				GinkgoT().Setenv("MODEL_PATH", "models/forest.yaml")
				GinkgoT().Setenv("SERVER_ADDRESS", ":9090")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Model.Path).To(Equal("models/forest.yaml"))
				Expect(cfg.Server.Address).To(Equal(":9090"))
			})
		})

		Context("with valid config file", func() {
			BeforeEach(func() {
				writeConfig(`
server:
  address: ":8081"
  environment: "prod"
  shutdown_timeout: "5s"

model:
  source: "minio"
  path: "models/penguins/classifier.json"
  load_timeout: "10s"

minio:
  endpoint: "minio.internal:9000"
  access_key: "svc"
  secret_key: "secret"
  use_ssl: true

logging:
  level: "debug"
  file: "/var/log/penguin.log"
`)
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Address).To(Equal(":8081"))
				Expect(cfg.Server.Environment).To(Equal(config.EnvProd))
				Expect(cfg.ShutdownTimeout()).To(Equal(5 * time.Second))
			})

			It("should parse the model and minio sections", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Model.Source).To(Equal(config.SourceMinIO))
				Expect(cfg.Model.Path).To(Equal("models/penguins/classifier.json"))
				Expect(cfg.LoadTimeout()).To(Equal(10 * time.Second))
				Expect(cfg.MinIO.Endpoint).To(Equal("minio.internal:9000"))
				Expect(cfg.MinIO.AccessKey).To(Equal("svc"))
				Expect(cfg.MinIO.UseSSL).To(BeTrue())
			})

			It("should parse logging", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelDebug))
				Expect(cfg.Logging.File).To(Equal("/var/log/penguin.log"))
			})
		})

		Context("with invalid config file", func() {
			It("should reject malformed yaml", func() {
				writeConfig("server: [unterminated")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unknown model source", func() {
				writeConfig("model:\n  source: \"http\"\n")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject minio source without credentials", func() {
				writeConfig("model:\n  source: \"minio\"\n  path: \"models/classifier.json\"\n")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject minio source with a bucket-only path", func() {
				writeConfig(`
model:
  source: "minio"
  path: "models"
minio:
  access_key: "svc"
  secret_key: "secret"
`)
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject an invalid address", func() {
				writeConfig("server:\n  address: \"invalid:host:port\"\n")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject an unknown log level", func() {
				writeConfig("logging:\n  level: \"verbose\"\n")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})

			It("should reject a non-positive load timeout", func() {
				writeConfig("model:\n  load_timeout: \"0s\"\n")
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
