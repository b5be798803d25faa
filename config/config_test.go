package config

import (
	"encoding/json"
	"testing"

	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every registered default", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.PlayerPlatform), ShouldEqual, "android")
			So(viper.GetString(key.CDNMediaBaseURL), ShouldEqual, "https://cdn.creatv.io")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("cdn.media_base_url"), ShouldEqual, "cdn_media_base_url")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlayerPlatform]

		Convey("Env is prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "CREATV_PLAYER_PLATFORM")
		})

		Convey("MarshalJSON reports its type and default", func() {
			data, err := json.Marshal(&field)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded["key"], ShouldEqual, key.PlayerPlatform)
			So(decoded["default"], ShouldEqual, "android")
			So(decoded["type"], ShouldEqual, "string")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given fields of every type", t, func() {
		text := Default[key.PlayerPlatform]
		number := Default[key.SearchLimit]
		flag := Default[key.PlayerResume]

		Convey("strings should be trimmed", func() {
			v, err := text.Parse([]string{" ios "})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "ios")
		})

		Convey("integers should be parsed", func() {
			v, err := number.Parse([]string{"40"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 40)

			_, err = number.Parse([]string{"forty"})
			So(err, ShouldNotBeNil)
		})

		Convey("booleans should be parsed", func() {
			v, err := flag.Parse([]string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)
		})

		Convey("scalars should take exactly one word", func() {
			_, err := text.Parse([]string{"a", "b"})
			So(err, ShouldNotBeNil)

			_, err = text.Parse(nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Write should create the config file", t, func() {
		So(Setup(), ShouldBeNil)
		viper.Set(key.SearchLimit, 33)
		defer viper.Set(key.SearchLimit, 20)

		So(Write(), ShouldBeNil)

		exists, err := afero.Exists(filesystem.API(), Path())
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)
	})
}
