package buildfeatures

import (
	"strconv"
	"strings"

	"settingskit/pkg/dsl"
)

const (
	DefaultApplitoolsServerURL = "https://eyes.applitools.com"

	applitoolsBatchIDPrefix = "teamcity"
)

// Environment variables the Applitools agent extension exports to build steps.
const (
	ApplitoolsBatchIDEnv          = "APPLITOOLS_BATCH_ID"
	ApplitoolsBatchNameEnv        = "APPLITOOLS_BATCH_NAME"
	ApplitoolsSequenceNameEnv     = "APPLITOOLS_SEQUENCE_NAME"
	ApplitoolsProjectServerURLEnv = "APPLITOOLS_PROJECT_SERVER_URL"
)

// Applitools groups the visual tests of a build into one Eyes batch and links
// the batch results from the build page.
type Applitools struct {
	dsl.BuildFeature
	ServerURL          *dsl.StringProp
	APIKey             *dsl.StringProp
	NotifyByCompletion *dsl.BoolProp
}

func NewApplitools(init func(*Applitools)) *Applitools {
	f := &Applitools{}
	f.Init("applitools", dsl.Param{Name: "applitoolsPlugin.serverURL", Value: DefaultApplitoolsServerURL})
	f.ServerURL = f.String("serverURL", "applitoolsPlugin.serverURL")
	f.APIKey = f.String("apiKey", "applitoolsPlugin.apiKey")
	f.NotifyByCompletion = f.Bool("notifyByCompletion", "applitoolsPlugin.notifyByCompletion")
	if init != nil {
		init(f)
	}
	return f
}

func AddApplitools(features *dsl.BuildFeatures, init func(*Applitools)) *Applitools {
	f := NewApplitools(init)
	features.Add(f)
	return f
}

// BatchID returns the Eyes batch identifier of a build, shared by the server
// and agent so both sides refer to the same batch.
func BatchID(buildTypeID, buildNumber string, buildID int64) string {
	return strings.Join([]string{
		applitoolsBatchIDPrefix, buildTypeID, buildNumber, strconv.FormatInt(buildID, 10),
	}, "-")
}

// NotifiesOnCompletion reports whether the server should notify Eyes when the
// build finishes: it needs both an API key and the notification flag.
func (f *Applitools) NotifiesOnCompletion() bool {
	notify, _ := f.NotifyByCompletion.Get()
	return notify && f.APIKey.Value() != ""
}
