// Package model holds the data shapes exchanged between the console pages and
// the mirroring backend.
package model

import "time"

// MirrorType is the kind of artifact a mirror request copies.
type MirrorType string

const (
	MirrorTypeImage MirrorType = "image"
	MirrorTypeChart MirrorType = "chart"
)

// Valid reports whether t is one of the known artifact kinds.
func (t MirrorType) Valid() bool {
	return t == MirrorTypeImage || t == MirrorTypeChart
}

// Toggle returns the other artifact kind.
func (t MirrorType) Toggle() MirrorType {
	if t == MirrorTypeChart {
		return MirrorTypeImage
	}
	return MirrorTypeChart
}

// PullRequestStatus is the outcome of a configuration change submission.
type PullRequestStatus string

const (
	PullRequestCreated PullRequestStatus = "created"
	PullRequestFailed  PullRequestStatus = "failed"
)

func (s PullRequestStatus) Valid() bool {
	return s == PullRequestCreated || s == PullRequestFailed
}

// RegistryConfig maps an external registry path to a target ECR repository.
type RegistryConfig struct {
	RegistryURL string `json:"registryUrl" yaml:"registryUrl"`
	ECRRepoName string `json:"ecrRepoName" yaml:"ecrRepoName"`
}

// MirrorRequest asks the backend to copy one artifact into ECR.
type MirrorRequest struct {
	SourceURL string     `json:"sourceUrl" yaml:"sourceUrl"`
	Type      MirrorType `json:"type" yaml:"type"`
}

// MirrorResult is the backend's answer to a MirrorRequest.
type MirrorResult struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}

type ECRRepository struct {
	RepositoryName string    `json:"repositoryName" yaml:"repositoryName"`
	RepositoryURI  string    `json:"repositoryUri" yaml:"repositoryUri"`
	CreatedAt      time.Time `json:"createdAt" yaml:"createdAt"`
}

// ECRImageDetails describes one image stored in a repository. ImageTags is
// empty for untagged images.
type ECRImageDetails struct {
	ImageDigest      string    `json:"imageDigest" yaml:"imageDigest"`
	ImageTags        []string  `json:"imageTags" yaml:"imageTags"`
	ImageSizeInBytes int64     `json:"imageSizeInBytes" yaml:"imageSizeInBytes"`
	ImagePushedAt    time.Time `json:"imagePushedAt" yaml:"imagePushedAt"`
}

// Untagged reports whether the image carries no tags.
func (d ECRImageDetails) Untagged() bool {
	return len(d.ImageTags) == 0
}

type PullRequestResult struct {
	PRURL  string            `json:"prUrl" yaml:"prUrl"`
	Status PullRequestStatus `json:"status" yaml:"status"`
}
