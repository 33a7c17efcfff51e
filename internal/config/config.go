package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
	} `yaml:"listen"`
	Journey struct {
		TypingBaseMs    int `yaml:"typing_base_ms" env-default:"400"`
		TypingPerCharMs int `yaml:"typing_per_char_ms" env-default:"8"`
		TypingCapMs     int `yaml:"typing_cap_ms" env-default:"2200"`
		AdvancePauseMs  int `yaml:"advance_pause_ms" env-default:"300"`
	} `yaml:"journey"`
	// Demo sentinels stand in for absent verification backends. They are
	// consulted as predicates by the step registries.
	Demo struct {
		AadhaarOTP             string `yaml:"aadhaar_otp" env-default:"123456"`
		EpfoFailOTP            string `yaml:"epfo_fail_otp" env-default:"000000"`
		EpfoTimeoutMobile      string `yaml:"epfo_timeout_mobile" env-default:"9999999999"`
		GstinLength            int    `yaml:"gstin_length" env-default:"15"`
		MaxOTPAttempts         int    `yaml:"max_otp_attempts" env-default:"3"`
		CallUnavailablePercent int    `yaml:"call_unavailable_percent" env-default:"20"`
	} `yaml:"demo"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
