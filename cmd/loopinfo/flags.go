package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bind binds each named flag of fs to the configuration key of the same name.
func bind(v *viper.Viper, fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		mustBind(v, name, fs.Lookup(name))
	}
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
