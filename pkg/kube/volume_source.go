// Copyright 2019 Tad Lebeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package kube

import (
	"fmt"

	"github.com/aaaaalbert/kubernetes-py/pkg/util"
	"github.com/go-openapi/swag"
)

// VolumeSourceType is the spec key of a volume source variant
type VolumeSourceType string

// Volume source types
const (
	VolumeTypeHostPath              VolumeSourceType = "hostPath"
	VolumeTypeAWSElasticBlockStore  VolumeSourceType = "awsElasticBlockStore"
	VolumeTypeGCEPersistentDisk     VolumeSourceType = "gcePersistentDisk"
	VolumeTypeNFS                   VolumeSourceType = "nfs"
	VolumeTypeCSI                   VolumeSourceType = "csi"
	VolumeTypeFlexVolume            VolumeSourceType = "flexVolume"
	VolumeTypeEmptyDir              VolumeSourceType = "emptyDir"
	VolumeTypeGitRepo               VolumeSourceType = "gitRepo"
	VolumeTypeSecret                VolumeSourceType = "secret"
	VolumeTypeConfigMap             VolumeSourceType = "configMap"
	VolumeTypePersistentVolumeClaim VolumeSourceType = "persistentVolumeClaim"
)

// VolumeTypes is the full volume source vocabulary
var VolumeTypes = []VolumeSourceType{
	VolumeTypeHostPath,
	VolumeTypeAWSElasticBlockStore,
	VolumeTypeGCEPersistentDisk,
	VolumeTypeNFS,
	VolumeTypeCSI,
	VolumeTypeFlexVolume,
	VolumeTypeEmptyDir,
	VolumeTypeGitRepo,
	VolumeTypeSecret,
	VolumeTypeConfigMap,
	VolumeTypePersistentVolumeClaim,
}

// nonPersistentVolumeTypes can only be used inline in a pod
var nonPersistentVolumeTypes = []VolumeSourceType{
	VolumeTypeEmptyDir,
	VolumeTypeGitRepo,
	VolumeTypeSecret,
	VolumeTypeConfigMap,
	VolumeTypePersistentVolumeClaim,
}

// PersistentVolumeTypes are the volume source types valid in a PersistentVolume spec
var PersistentVolumeTypes = persistentVolumeTypes()

func persistentVolumeTypes() []VolumeSourceType {
	ret := []VolumeSourceType{}
	for _, t := range VolumeTypes {
		if !util.Contains(nonPersistentVolumeTypes, t) {
			ret = append(ret, t)
		}
	}
	return ret
}

// IsPersistent returns true if the type can back a PersistentVolume
func (t VolumeSourceType) IsPersistent() bool {
	return util.Contains(PersistentVolumeTypes, t)
}

// VolumeSource is implemented by every persistent volume source variant
type VolumeSource interface {
	SourceType() VolumeSourceType
}

// HostPathVolumeSource is a directory on the node
type HostPathVolumeSource struct {
	Path string  `json:"path"`
	Type *string `json:"type,omitempty"`
}

// AWSElasticBlockStoreVolumeSource is an AWS EBS volume
type AWSElasticBlockStoreVolumeSource struct {
	VolumeID  string `json:"volumeID"`
	FSType    string `json:"fsType,omitempty"`
	Partition *int32 `json:"partition,omitempty"`
	ReadOnly  *bool  `json:"readOnly,omitempty"`
}

// GCEPersistentDiskVolumeSource is a GCE persistent disk
type GCEPersistentDiskVolumeSource struct {
	PDName    string `json:"pdName"`
	FSType    string `json:"fsType,omitempty"`
	Partition *int32 `json:"partition,omitempty"`
	ReadOnly  *bool  `json:"readOnly,omitempty"`
}

// NFSVolumeSource is an NFS export
type NFSVolumeSource struct {
	Server   string `json:"server"`
	Path     string `json:"path"`
	ReadOnly *bool  `json:"readOnly,omitempty"`
}

// CSIPersistentVolumeSource is a volume provided by a CSI driver
type CSIPersistentVolumeSource struct {
	Driver           string            `json:"driver"`
	VolumeHandle     string            `json:"volumeHandle"`
	FSType           string            `json:"fsType,omitempty"`
	ReadOnly         *bool             `json:"readOnly,omitempty"`
	VolumeAttributes map[string]string `json:"volumeAttributes,omitempty"`
}

// FlexVolumeSource is a volume provided by a flex volume driver
type FlexVolumeSource struct {
	Driver   string            `json:"driver"`
	FSType   string            `json:"fsType,omitempty"`
	ReadOnly *bool             `json:"readOnly,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

// SourceType is from VolumeSource
func (*HostPathVolumeSource) SourceType() VolumeSourceType { return VolumeTypeHostPath }

// SourceType is from VolumeSource
func (*AWSElasticBlockStoreVolumeSource) SourceType() VolumeSourceType {
	return VolumeTypeAWSElasticBlockStore
}

// SourceType is from VolumeSource
func (*GCEPersistentDiskVolumeSource) SourceType() VolumeSourceType {
	return VolumeTypeGCEPersistentDisk
}

// SourceType is from VolumeSource
func (*NFSVolumeSource) SourceType() VolumeSourceType { return VolumeTypeNFS }

// SourceType is from VolumeSource
func (*CSIPersistentVolumeSource) SourceType() VolumeSourceType { return VolumeTypeCSI }

// SourceType is from VolumeSource
func (*FlexVolumeSource) SourceType() VolumeSourceType { return VolumeTypeFlexVolume }

// NewVolumeSource returns the default value of a persistent volume source variant
func NewVolumeSource(t VolumeSourceType) (VolumeSource, error) {
	switch t {
	case VolumeTypeHostPath:
		return &HostPathVolumeSource{}, nil
	case VolumeTypeAWSElasticBlockStore:
		return &AWSElasticBlockStoreVolumeSource{}, nil
	case VolumeTypeGCEPersistentDisk:
		return &GCEPersistentDiskVolumeSource{}, nil
	case VolumeTypeNFS:
		return &NFSVolumeSource{}, nil
	case VolumeTypeCSI:
		return &CSIPersistentVolumeSource{}, nil
	case VolumeTypeFlexVolume:
		return &FlexVolumeSource{}, nil
	}
	return nil, fmt.Errorf("invalid persistent volume type %q", t)
}

// IsReadOnly returns the readOnly flag of a variant, false when unset or not supported
func IsReadOnly(src VolumeSource) bool {
	switch s := src.(type) {
	case *AWSElasticBlockStoreVolumeSource:
		return swag.BoolValue(s.ReadOnly)
	case *GCEPersistentDiskVolumeSource:
		return swag.BoolValue(s.ReadOnly)
	case *NFSVolumeSource:
		return swag.BoolValue(s.ReadOnly)
	case *CSIPersistentVolumeSource:
		return swag.BoolValue(s.ReadOnly)
	case *FlexVolumeSource:
		return swag.BoolValue(s.ReadOnly)
	}
	return false
}
