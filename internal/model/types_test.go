package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorType_Toggle(t *testing.T) {
	assert.Equal(t, MirrorTypeChart, MirrorTypeImage.Toggle())
	assert.Equal(t, MirrorTypeImage, MirrorTypeChart.Toggle())
}

func TestMirrorType_Valid(t *testing.T) {
	assert.True(t, MirrorTypeImage.Valid())
	assert.True(t, MirrorTypeChart.Valid())
	assert.False(t, MirrorType("oci").Valid())
	assert.False(t, MirrorType("").Valid())
}

func TestPullRequestStatus_Valid(t *testing.T) {
	assert.True(t, PullRequestCreated.Valid())
	assert.True(t, PullRequestFailed.Valid())
	assert.False(t, PullRequestStatus("merged").Valid())
}

func TestECRImageDetails_DecodeNullTags(t *testing.T) {
	data := []byte(`{"imageDigest":"sha256:abc","imageTags":null,"imageSizeInBytes":1024,"imagePushedAt":"2023-10-05T12:00:00Z"}`)

	var img ECRImageDetails
	require.NoError(t, json.Unmarshal(data, &img))
	assert.True(t, img.Untagged())
	assert.Equal(t, int64(1024), img.ImageSizeInBytes)
	assert.Equal(t, time.Date(2023, 10, 5, 12, 0, 0, 0, time.UTC), img.ImagePushedAt.UTC())
}

func TestRegistryConfig_WireNames(t *testing.T) {
	data, err := json.Marshal(RegistryConfig{RegistryURL: "quay.io/coreos/etcd", ECRRepoName: "mirror/etcd"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"registryUrl":"quay.io/coreos/etcd","ecrRepoName":"mirror/etcd"}`, string(data))
}
