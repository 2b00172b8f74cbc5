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


package main

import (
	"fmt"
	"time"

	"github.com/aaaaalbert/kubernetes-py/pkg/kube"
	"github.com/aaaaalbert/kubernetes-py/pkg/object"
	units "github.com/docker/go-units"
	uuid "github.com/satori/go.uuid"
)

func initPV() {
	cmd, _ := parser.AddCommand("persistentvolume", "Persistent Volume commands", "Persistent Volume Subcommands", &pvCmd{})
	cmd.Aliases = []string{"pv"}
	cmd.AddCommand("list", "List Persistent Volumes", "List all persistent volumes in the cluster", &pvListCmd{})
	cmd.AddCommand("get", "Get a Persistent Volume", "Fetch a persistent volume by name", &pvGetCmd{})
	cmd.AddCommand("create", "Create a Persistent Volume", "Create a persistent volume to be used in the cluster", &pvCreateCmd{})
	cmd.AddCommand("delete", "Delete a Persistent Volume", "Delete a persistent volume from a cluster", &pvDeleteCmd{})
}

type pvCmd struct {
	tableCols []string
}

const (
	hPVName     = "PV Name"
	hPVUid      = "PV uid"
	hPVType     = "Type"
	hPVStorage  = "PV Storage"
	hPVPhase    = "Phase"
	hPVModes    = "Access Modes"
	hPVReclaim  = "Reclaim Policy"
	hPVStgClass = "Storage Class"
)

var pvHeaders = map[string]string{
	hPVName:     "pv name",
	hPVUid:      "pv uid",
	hPVType:     "volume source type",
	hPVStorage:  "pv storage",
	hPVPhase:    "status phase",
	hPVModes:    "access modes",
	hPVReclaim:  "reclaim policy",
	hPVStgClass: "storage class name",
}

var pvDefaultHeaders = []string{hPVName, hPVType, hPVStorage, hPVPhase}

func (c *pvCmd) makeRecord(pv *kube.PersistentVolume) map[string]string {
	size := ""
	if b, err := pv.CapacityBytes(); err == nil && b > 0 {
		size = units.BytesSize(float64(b))
	}
	modes := ""
	for i, m := range pv.AccessModes() {
		if i > 0 {
			modes += ","
		}
		modes += m
	}
	return map[string]string{
		hPVName:     pv.Name(),
		hPVUid:      pv.Model().UID(),
		hPVType:     string(pv.Type()),
		hPVStorage:  size,
		hPVPhase:    pv.Phase(),
		hPVModes:    modes,
		hPVReclaim:  pv.ReclaimPolicy(),
		hPVStgClass: pv.StorageClassName(),
	}
}

func (c *pvCmd) validateColumns(columns string) (err error) {
	c.tableCols, err = validateColumns(columns, pvHeaders, pvDefaultHeaders)
	return
}

func (c *pvCmd) Emit(data []*kube.PersistentVolume) error {
	objs := make([]object.Object, len(data))
	for i, pv := range data {
		objs[i] = pv.Model()
	}
	if done, err := emitObjects(objs); done {
		return err
	}
	recs := make([]map[string]string, len(data))
	for i, pv := range data {
		recs[i] = c.makeRecord(pv)
	}
	return emitRows(c.tableCols, recs)
}

type pvListCmd struct {
	Columns string `long:"columns" description:"Comma separated list of column names"`
	pvCmd
}

func (c *pvListCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	res, err := kube.ListPersistentVolumes(appCtx.ctx, appCtx.Config)
	if err != nil {
		return err
	}
	return c.Emit(res)
}

type pvGetCmd struct {
	Name    string `short:"n" long:"name" description:"Specify the Persistent Volume name" required:"yes"`
	Columns string `long:"columns" description:"Comma separated list of column names"`
	pvCmd
}

func (c *pvGetCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	pv, err := kube.GetPersistentVolumeByName(appCtx.ctx, appCtx.Config, c.Name)
	if err != nil {
		return err
	}
	if pv == nil {
		return fmt.Errorf("persistent volume %q not found", c.Name)
	}
	return c.Emit([]*kube.PersistentVolume{pv})
}

type pvCreateCmd struct {
	Name          string   `short:"n" long:"name" description:"Specify the Persistent Volume name. Generated if not set"`
	Type          string   `short:"T" long:"type" description:"Specify the volume source type" default:"hostPath"`
	Size          int64    `short:"s" long:"size" description:"Specify the size in GiB." required:"yes"`
	HostPath      string   `long:"host-path" description:"Specify the host path for hostPath volumes"`
	VolumeID      string   `short:"v" long:"volume-id" description:"Specify the EBS volume ID"`
	PDName        string   `long:"pd-name" description:"Specify the GCE persistent disk name"`
	FsType        string   `short:"F" long:"fs-type" description:"Specify the FS Type"`
	NFSServer     string   `long:"nfs-server" description:"Specify the NFS server"`
	NFSPath       string   `long:"nfs-path" description:"Specify the NFS export path"`
	AccessModes   []string `short:"m" long:"access-mode" description:"An access mode. Repeat as needed" default:"ReadWriteOnce"`
	ReclaimPolicy string   `short:"R" long:"reclaim-policy" description:"Specify the reclaim policy" choice:"Retain" choice:"Recycle" choice:"Delete" default:"Retain"`
	WaitSeconds   int      `short:"w" long:"wait-seconds" description:"Time to wait for the volume to become Available" default:"60"`
	Columns       string   `long:"columns" description:"Comma separated list of column names"`
	pvCmd
}

func (c *pvCreateCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	if c.Name == "" {
		c.Name = "pv-" + uuid.NewV4().String()
	}
	if c.WaitSeconds > 0 {
		appCtx.Config.PollTimeout = time.Duration(c.WaitSeconds) * time.Second
	}
	pv, err := kube.NewPersistentVolume(appCtx.Config, c.Name, kube.VolumeSourceType(c.Type))
	if err != nil {
		return err
	}
	set := func(fn func(string) error, value string) {
		if err == nil && value != "" {
			err = fn(value)
		}
	}
	set(pv.SetHostPath, c.HostPath)
	set(pv.SetVolumeID, c.VolumeID)
	set(pv.SetPDName, c.PDName)
	set(pv.SetFSType, c.FsType)
	set(pv.SetNFSServer, c.NFSServer)
	set(pv.SetNFSPath, c.NFSPath)
	set(pv.SetReclaimPolicy, c.ReclaimPolicy)
	if err != nil {
		return err
	}
	if err = pv.SetCapacityBytes(c.Size * int64(units.GiB)); err != nil {
		return err
	}
	if err = pv.SetAccessModes(c.AccessModes...); err != nil {
		return err
	}
	if err = pv.Create(appCtx.ctx); err != nil {
		return err
	}
	return c.Emit([]*kube.PersistentVolume{pv})
}

type pvDeleteCmd struct {
	Name    string `short:"n" long:"name" description:"Specify the Persistent Volume name" required:"yes"`
	Columns string `long:"columns" description:"Comma separated list of column names"`
	pvCmd
}

func (c *pvDeleteCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	pv, err := kube.NewPersistentVolume(appCtx.Config, c.Name, kube.VolumeTypeHostPath)
	if err != nil {
		return err
	}
	if err = pv.Delete(appCtx.ctx); err != nil {
		return err
	}
	return c.Emit([]*kube.PersistentVolume{pv})
}
