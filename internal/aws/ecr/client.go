package ecr

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecr "github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/smithy-go"

	"tasnim.dev/ecr-mirror/internal/model"
)

type ECRAPI interface {
	DescribeRepositories(ctx context.Context, params *awsecr.DescribeRepositoriesInput, optFns ...func(*awsecr.Options)) (*awsecr.DescribeRepositoriesOutput, error)
	DescribeImages(ctx context.Context, params *awsecr.DescribeImagesInput, optFns ...func(*awsecr.Options)) (*awsecr.DescribeImagesOutput, error)
}

// Client reads repositories and images for the explorer.
type Client struct {
	api ECRAPI
}

func NewClient(api ECRAPI) *Client {
	return &Client{api: api}
}

func (c *Client) ListRepositories(ctx context.Context) ([]model.ECRRepository, error) {
	repos := []model.ECRRepository{}
	var nextToken *string

	for {
		out, err := c.api.DescribeRepositories(ctx, &awsecr.DescribeRepositoriesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeRepositories: %w", err)
		}

		for _, r := range out.Repositories {
			repo := model.ECRRepository{
				RepositoryName: aws.ToString(r.RepositoryName),
				RepositoryURI:  aws.ToString(r.RepositoryUri),
			}
			if r.CreatedAt != nil {
				repo.CreatedAt = *r.CreatedAt
			}
			repos = append(repos, repo)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return repos, nil
}

// ListImages returns every image in repoName, newest push first. An unknown
// repository yields an empty list.
func (c *Client) ListImages(ctx context.Context, repoName string) ([]model.ECRImageDetails, error) {
	images := []model.ECRImageDetails{}
	var nextToken *string

	for {
		out, err := c.api.DescribeImages(ctx, &awsecr.DescribeImagesInput{
			RepositoryName: aws.String(repoName),
			NextToken:      nextToken,
		})
		if err != nil {
			if isRepositoryNotFound(err) {
				return []model.ECRImageDetails{}, nil
			}
			return nil, fmt.Errorf("DescribeImages: %w", err)
		}

		for _, img := range out.ImageDetails {
			d := model.ECRImageDetails{
				ImageDigest:      aws.ToString(img.ImageDigest),
				ImageTags:        img.ImageTags,
				ImageSizeInBytes: aws.ToInt64(img.ImageSizeInBytes),
			}
			if img.ImagePushedAt != nil {
				d.ImagePushedAt = *img.ImagePushedAt
			}
			images = append(images, d)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].ImagePushedAt.After(images[j].ImagePushedAt)
	})

	return images, nil
}

func isRepositoryNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "RepositoryNotFoundException"
}
